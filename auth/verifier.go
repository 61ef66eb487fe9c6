// Package auth verifies bearer identity tokens against an external OIDC
// identity provider using issuer discovery and cached JWKS keys.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates a raw bearer token and returns the caller identity.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// VerifierConfig configures the token verifier.
type VerifierConfig struct {
	// Issuer is the OIDC issuer URL (required).
	Issuer string

	// Audience is the expected "aud" claim (required).
	Audience string

	// HTTPClient is an optional HTTP client for discovery and JWKS requests.
	HTTPClient *http.Client

	// JWKSCacheDuration controls how long JWKS keys are cached (default: 1h).
	JWKSCacheDuration time.Duration
}

func (c *VerifierConfig) applyDefaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if c.JWKSCacheDuration == 0 {
		c.JWKSCacheDuration = time.Hour
	}
}

// Verifier validates ID tokens issued by a single OIDC issuer. It is
// constructed once at startup and safe for concurrent use; the JWKS cache
// refreshes itself on expiry and on unknown key ids.
type Verifier struct {
	issuer   string
	audience string
	config   VerifierConfig
	parser   *jwt.Parser
	jwks     *jwksCache
}

// NewVerifier creates a token verifier for the given issuer. It performs
// OIDC discovery once to locate the issuer's JWKS endpoint.
func NewVerifier(ctx context.Context, cfg VerifierConfig) (*Verifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("auth: issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("auth: audience is required")
	}
	cfg.applyDefaults()

	v := &Verifier{
		issuer:   strings.TrimRight(cfg.Issuer, "/"),
		audience: cfg.Audience,
		config:   cfg,
	}
	v.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)

	jwksURI, err := v.discoverJWKS(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: discovery failed for %s: %w", cfg.Issuer, err)
	}
	v.jwks = &jwksCache{
		jwksURI:  jwksURI,
		client:   cfg.HTTPClient,
		cacheTTL: cfg.JWKSCacheDuration,
	}

	return v, nil
}

// Verify validates a raw ID token and returns the caller identity. It checks
// the RS256 signature against the issuer's JWKS plus the issuer, audience,
// and expiry claims.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(rawToken, claims, v.keyFunc(ctx))
	if err != nil {
		return nil, fmt.Errorf("auth: verify token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("auth: token is not valid")
	}

	id := identityFromClaims(claims)
	if id.UID == "" {
		return nil, errors.New("auth: token carries no subject")
	}
	return id, nil
}

// keyFunc resolves the signing key for a parsed token header from the JWKS cache.
func (v *Verifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header has no kid")
		}
		return v.jwks.signingKey(ctx, kid)
	}
}

type discoveryDoc struct {
	Issuer  string `json:"issuer"`
	JWKSUri string `json:"jwks_uri"`
}

func (v *Verifier) discoverJWKS(ctx context.Context) (string, error) {
	wellKnown := v.issuer + "/.well-known/openid-configuration"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wellKnown, http.NoBody)
	if err != nil {
		return "", err
	}

	resp, err := v.config.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("discovery returned %d: %s", resp.StatusCode, string(body))
	}

	var doc discoveryDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode discovery document: %w", err)
	}
	if doc.JWKSUri == "" {
		return "", errors.New("discovery document missing jwks_uri")
	}
	return doc.JWKSUri, nil
}
