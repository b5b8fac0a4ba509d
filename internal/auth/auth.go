// Package auth resolves bearer credentials to verified principal ids. The
// identity provider itself is external; this package only defines the
// boundary and a static implementation for development and tests.
package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/teresa-solution/tourist-safety-service/internal/fault"
)

// Verifier turns a bearer credential into a verified principal id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// StaticVerifier maps opaque tokens to principal ids. Safe for concurrent
// use; intended for development and tests.
type StaticVerifier struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	m := make(map[string]string, len(tokens))
	for k, v := range tokens {
		m[k] = v
	}
	return &StaticVerifier{tokens: m}
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	principal, ok := v.tokens[token]
	if !ok {
		return "", fault.ErrUnauthorized
	}
	return principal, nil
}

// Grant registers a token for a principal.
func (v *StaticVerifier) Grant(token, principal string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[token] = principal
}

// BearerToken extracts the credential from an Authorization header value.
// Returns "" when the header is absent or not a bearer scheme.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
