// Package identity is a small client for the Firebase Identity Toolkit and
// Secure Token REST APIs.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultIdentityURL = "https://identitytoolkit.googleapis.com/v1"
	DefaultTokenURL    = "https://securetoken.googleapis.com/v1/token"
)

// APIError carries a non-2xx upstream response as-is so callers can forward
// it to their own clients.
type APIError struct {
	Status int
	Body   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("identity: upstream status %d: %s", e.Status, string(e.Body))
}

type Client struct {
	apiKey      string
	httpClient  *http.Client
	identityURL string
	tokenURL    string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		identityURL: DefaultIdentityURL,
		tokenURL:    DefaultTokenURL,
	}
}

// AuthResponse is returned by sign-up and the sign-in flows. Raw keeps the
// full upstream document.
type AuthResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Registered   bool   `json:"registered,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type User struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	DisplayName   string `json:"displayName,omitempty"`
}

type lookupResponse struct {
	Users []User `json:"users"`
}

type TokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type OOBResponse struct {
	Email string `json:"email"`
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authCall(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authCall(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithGoogle exchanges a Google ID token for a Firebase session.
func (c *Client) SignInWithGoogle(ctx context.Context, googleIDToken, requestURI string) (*AuthResponse, error) {
	postBody := url.Values{}
	postBody.Set("id_token", googleIDToken)
	postBody.Set("providerId", "google.com")

	return c.authCall(ctx, "accounts:signInWithIdp", map[string]any{
		"postBody":            postBody.Encode(),
		"requestUri":          requestURI,
		"returnSecureToken":   true,
		"returnIdpCredential": true,
	})
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	var out OOBResponse
	_, err := c.post(ctx, c.identityEndpoint("accounts:sendOobCode"), map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, &out)
	return err
}

func (c *Client) SendEmailVerification(ctx context.Context, idToken string) error {
	var out OOBResponse
	_, err := c.post(ctx, c.identityEndpoint("accounts:sendOobCode"), map[string]any{
		"requestType": "VERIFY_EMAIL",
		"idToken":     idToken,
	}, &out)
	return err
}

// ConfirmEmailVerification applies the out-of-band code from a verification
// email and returns the now-verified user.
func (c *Client) ConfirmEmailVerification(ctx context.Context, oobCode string) (*User, error) {
	var out User
	if _, err := c.post(ctx, c.identityEndpoint("accounts:update"), map[string]any{
		"oobCode": oobCode,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Lookup(ctx context.Context, idToken string) (*User, error) {
	var out lookupResponse
	if _, err := c.post(ctx, c.identityEndpoint("accounts:lookup"), map[string]any{
		"idToken": idToken,
	}, &out); err != nil {
		return nil, err
	}
	if len(out.Users) == 0 {
		return nil, &APIError{Status: http.StatusNotFound, Body: json.RawMessage(`{"error":{"code":404,"message":"USER_NOT_FOUND"}}`)}
	}
	return &out.Users[0], nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	endpoint := fmt.Sprintf("%s?key=%s", c.tokenURL, url.QueryEscape(c.apiKey))
	if _, err := c.post(ctx, endpoint, map[string]any{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) authCall(ctx context.Context, method string, payload map[string]any) (*AuthResponse, error) {
	var out AuthResponse
	raw, err := c.post(ctx, c.identityEndpoint(method), payload, &out)
	if err != nil {
		return nil, err
	}
	out.Raw = raw
	return &out, nil
}

func (c *Client) identityEndpoint(method string) string {
	return fmt.Sprintf("%s/%s?key=%s", c.identityURL, method, url.QueryEscape(c.apiKey))
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("identity encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("identity read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if !json.Valid(raw) {
			raw, _ = json.Marshal(string(raw))
		}
		return nil, &APIError{Status: resp.StatusCode, Body: raw}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("identity decode: %w", err)
	}

	return raw, nil
}
