package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Service interface {
	// Authorize validates the raw Authorization header and checks that the
	// token grants requiredScope. It returns the full set of granted
	// permissions on success.
	Authorize(ctx context.Context, authorizationHeader, requiredScope string) ([]string, error)
}

// KeyProvider resolves the RSA public key matching a token's kid header.
type KeyProvider interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Claims are the token claims this service cares about. Permissions stays
// nil when the claim is absent, which is distinct from an empty list.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type Usecase struct {
	keys     KeyProvider
	issuer   string
	audience string
}

func NewUsecase(keys KeyProvider, issuer, audience string) *Usecase {
	return &Usecase{
		keys:     keys,
		issuer:   issuer,
		audience: audience,
	}
}

var errKeyNotFound = errors.New("signing key not found")

// Authorize runs the authorization pipeline: header shape, signing key,
// signature, issuer/audience/expiry, permissions claim, scope membership.
// The first failing stage short-circuits with its specific error.
func (uc *Usecase) Authorize(ctx context.Context, authorizationHeader, requiredScope string) ([]string, error) {
	rawToken, err := bearerToken(authorizationHeader)
	if err != nil {
		return nil, err
	}

	claims := new(Claims)
	_, err = jwt.ParseWithClaims(rawToken, claims, uc.keyFunc(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(uc.issuer),
		jwt.WithAudience(uc.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if claims.Permissions == nil {
		return nil, ErrPermissionsMissing
	}

	for _, permission := range claims.Permissions {
		if permission == requiredScope {
			return claims.Permissions, nil
		}
	}

	return nil, ErrForbidden
}

// bearerToken extracts the raw token from an Authorization header of the
// exact shape "Bearer <token>". The scheme keyword is case-sensitive.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrHeaderMissing
	}

	parts := strings.Split(header, " ")

	if parts[0] != "Bearer" {
		return "", ErrNoBearerPrefix
	}

	if len(parts) == 1 {
		return "", ErrTokenMissing
	}

	if len(parts) > 2 {
		return "", ErrMalformedHeader
	}

	return parts[1], nil
}

func (uc *Usecase) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errKeyNotFound
		}

		key, err := uc.keys.Key(ctx, kid)
		if err != nil {
			return nil, errKeyNotFound
		}

		return key, nil
	}
}

func classifyTokenError(err error) *Error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrInvalidClaims
	case errors.Is(err, errKeyNotFound):
		return ErrSigningKeyNotFound
	default:
		return ErrInvalidToken
	}
}
