// Package googleauth exchanges service-account credentials for OAuth
// access tokens used by the Google REST providers.
package googleauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/intervo/intervo/pkg/errorsx"
)

const (
	tokenURL     = "https://oauth2.googleapis.com/token"
	defaultScope = "https://www.googleapis.com/auth/cloud-platform"
	grantType    = "urn:ietf:params:oauth:grant-type:jwt-bearer"
)

// Credentials holds the process-wide service account identity, resolved
// once at startup and shared read-only by every Google provider client.
// Absence is not validated eagerly; the first provider call fails instead.
type Credentials struct {
	ClientEmail string
	PrivateKey  string
	ProjectID   string
}

// TokenSource mints and caches OAuth tokens via the JWT-bearer flow.
// Safe for concurrent use.
type TokenSource struct {
	creds  Credentials
	scope  string
	client *http.Client
	now    func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenSource builds a token source for the cloud-platform scope.
func NewTokenSource(creds Credentials) *TokenSource {
	return &TokenSource{
		creds:  creds,
		scope:  defaultScope,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// Token returns a cached access token, minting a fresh one when the cached
// token is missing or within a minute of expiry.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && t.now().Add(time.Minute).Before(t.expiry) {
		return t.token, nil
	}

	assertion, err := t.signAssertion()
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonAuthToken)
	}

	form := url.Values{}
	form.Set("grant_type", grantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonAuthToken)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonAuthToken)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errorsx.Newf(errorsx.ReasonAuthToken, "token exchange failed: %s: %s", resp.Status, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonAuthToken)
	}
	if payload.AccessToken == "" {
		return "", errorsx.New(errorsx.ReasonAuthToken, "token exchange returned no access token")
	}

	t.token = payload.AccessToken
	t.expiry = t.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return t.token, nil
}

func (t *TokenSource) signAssertion() (string, error) {
	if strings.TrimSpace(t.creds.ClientEmail) == "" || strings.TrimSpace(t.creds.PrivateKey) == "" {
		return "", errorsx.New(errorsx.ReasonAuthToken, "google service account credentials are not configured")
	}

	// Keys pasted through env vars commonly carry literal \n sequences.
	pemKey := strings.ReplaceAll(t.creds.PrivateKey, `\n`, "\n")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pemKey))
	if err != nil {
		return "", err
	}

	now := t.now()
	claims := jwt.MapClaims{
		"iss":   t.creds.ClientEmail,
		"scope": t.scope,
		"aud":   tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
}
