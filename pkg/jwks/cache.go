// Package jwks fetches and caches the RSA public keys an identity
// provider publishes at its JWKS endpoint.
package jwks

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// Cache holds the provider's signing keys keyed by kid, refreshed on
// demand once the TTL elapses. Safe for concurrent use.
type Cache struct {
	url        string
	httpClient *http.Client
	ttl        time.Duration

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	fetched time.Time
}

func NewCache(url string, client *http.Client, ttl time.Duration) *Cache {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{
		url:        url,
		httpClient: client,
		ttl:        ttl,
		keys:       make(map[string]*rsa.PublicKey),
	}
}

// Key returns the public key for kid, refreshing the cached key set if
// it is stale. A stale key is still served when the refresh fails.
func (c *Cache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.RLock()
	key, ok := c.keys[kid]
	stale := time.Since(c.fetched) > c.ttl
	c.mu.RUnlock()

	if ok && !stale {
		return key, nil
	}

	keys, err := c.refresh(ctx)
	if err != nil {
		if ok {
			return key, nil
		}
		return nil, err
	}

	key, ok = keys[kid]
	if !ok {
		return nil, fmt.Errorf("jwks: no key with kid %q", kid)
	}

	return key, nil
}

func (c *Cache) refresh(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// another goroutine may have refreshed while we waited for the lock
	if time.Since(c.fetched) < c.ttl && len(c.keys) > 0 {
		return c.keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks: fetch failed with status %d", resp.StatusCode)
	}

	var keySet struct {
		Keys []struct {
			Kty string `json:"kty"`
			Kid string `json:"kid"`
			Use string `json:"use"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return nil, fmt.Errorf("jwks: decode key set: %w", err)
	}

	c.keys = make(map[string]*rsa.PublicKey)

	for _, k := range keySet.Keys {
		if k.Kty != "RSA" {
			continue
		}

		nBytes, err := base64URLDecode(k.N)
		if err != nil {
			continue
		}

		eBytes, err := base64URLDecode(k.E)
		if err != nil {
			continue
		}

		e := 0
		for _, b := range eBytes {
			e = e<<8 + int(b)
		}

		c.keys[k.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: e,
		}
	}

	c.fetched = time.Now()
	return c.keys, nil
}

func base64URLDecode(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}

	return base64.URLEncoding.DecodeString(s)
}
