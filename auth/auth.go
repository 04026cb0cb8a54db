// Package auth decides, per request, whether the caller holds a
// required permission scope. Tokens are RS256 bearer tokens issued by a
// third-party identity provider and verified against its published keys.
package auth

import "net/http"

// Error codes carried in the error envelope for authorization failures.
const (
	CodeHeaderMissing = "authorization_header_missing"
	CodeInvalidHeader = "invalid_header"
	CodeTokenExpired  = "token_expired"
	CodeInvalidClaims = "invalid_claims"
	CodeForbidden     = "forbidden"
)

var (
	ErrHeaderMissing = &Error{
		Code:        CodeHeaderMissing,
		Description: "Authorization header is expected.",
		Status:      http.StatusUnauthorized,
	}
	ErrNoBearerPrefix = &Error{
		Code:        CodeInvalidHeader,
		Description: "Authorization header must start with Bearer.",
		Status:      http.StatusUnauthorized,
	}
	ErrTokenMissing = &Error{
		Code:        CodeInvalidHeader,
		Description: "Token not found.",
		Status:      http.StatusUnauthorized,
	}
	ErrMalformedHeader = &Error{
		Code:        CodeInvalidHeader,
		Description: "Authorization header must be a bearer token.",
		Status:      http.StatusUnauthorized,
	}
	ErrSigningKeyNotFound = &Error{
		Code:        CodeInvalidHeader,
		Description: "Unable to find the appropriate signing key.",
		Status:      http.StatusUnauthorized,
	}
	ErrTokenExpired = &Error{
		Code:        CodeTokenExpired,
		Description: "The token has expired.",
		Status:      http.StatusUnauthorized,
	}
	ErrInvalidClaims = &Error{
		Code:        CodeInvalidClaims,
		Description: "Incorrect claims, please check the audience and issuer.",
		Status:      http.StatusUnauthorized,
	}
	ErrInvalidToken = &Error{
		Code:        CodeInvalidHeader,
		Description: "Unable to parse the authentication token.",
		Status:      http.StatusUnauthorized,
	}
	ErrPermissionsMissing = &Error{
		Code:        CodeInvalidClaims,
		Description: "Permissions not included in the token.",
		Status:      http.StatusBadRequest,
	}
	ErrForbidden = &Error{
		Code:        CodeForbidden,
		Description: "Permission not found.",
		Status:      http.StatusForbidden,
	}
)

// Error is an authorization failure with a stable machine-readable code
// and the HTTP status the boundary must respond with.
type Error struct {
	Code        string
	Description string
	Status      int
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}
