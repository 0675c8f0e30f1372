// Package authgw is the HTTP client for the authentication gateway.
// It normalizes the gateway's historical wire shapes into one Identity
// and maps HTTP failures onto the auth error taxonomy. It performs no
// retries; a retry is a page-level affordance, not a core guarantee.
package authgw

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/campuslink/campuslink/internal/domain/auth"
)

const defaultBaseURL = "http://localhost:8000"

// Client talks to the auth gateway (POST /login, POST /register).
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewClient creates an auth gateway client. The base URL defaults to the
// CAMPUSLINK_AUTH_URL environment variable; options override defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: envOrDefault("CAMPUSLINK_AUTH_URL", defaultBaseURL),
		timeout: 10 * time.Second,
		logger:  slog.Default(),
		tracer:  otel.Tracer("campuslink/authgw"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// loginRequest is the wire shape of POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// identityResponse covers both observed success shapes: the minimal
// {username, token} pair and the richer record with Fname/Lname.
type identityResponse struct {
	Username  string `json:"username"`
	Token     string `json:"token"`
	FirstName string `json:"Fname"`
	LastName  string `json:"Lname"`
}

// errorResponse is the gateway's error body ({"detail": "..."}).
type errorResponse struct {
	Detail string `json:"detail"`
}

// RegisterRequest carries the fields of POST /register.
type RegisterRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// Login authenticates username/password against the gateway. On success
// it returns the normalized identity and the bearer token. Errors map to
// the taxonomy: 401 -> ErrInvalidCredentials, connection-level failure ->
// ErrUnreachable, anything else -> *GatewayError.
func (c *Client) Login(ctx context.Context, username, password string) (auth.Identity, string, error) {
	ctx, span := c.tracer.Start(ctx, "authgw.login",
		trace.WithAttributes(attribute.String("auth.username", username)))
	defer span.End()

	var resp identityResponse
	status, err := c.doRequest(ctx, http.MethodPost, "/login",
		loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		var gwErr *GatewayError
		if errors.As(err, &gwErr) && gwErr.Code == http.StatusUnauthorized {
			return auth.Identity{}, "", &InvalidCredentialsError{Detail: gwErr.Detail}
		}
		return auth.Identity{}, "", err
	}
	_ = status

	identity := auth.Identity{
		Username:  resp.Username,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
	}
	if !identity.Valid() || resp.Token == "" {
		return auth.Identity{}, "", &GatewayError{
			Code:   http.StatusOK,
			Detail: "login response missing username or token",
		}
	}

	c.logger.Debug("login succeeded",
		"username", identity.Username,
		"token_fp", TokenFingerprint(resp.Token))
	return identity, resp.Token, nil
}

// Register creates a new account. A 409 maps to ErrUsernameTaken.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (auth.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "authgw.register",
		trace.WithAttributes(attribute.String("auth.username", req.Username)))
	defer span.End()

	body := struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"Fname"`
		LastName  string `json:"Lname"`
	}{req.Username, req.Password, req.FirstName, req.LastName}

	var resp identityResponse
	_, err := c.doRequest(ctx, http.MethodPost, "/register", body, &resp)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		var gwErr *GatewayError
		if errors.As(err, &gwErr) && gwErr.Code == http.StatusConflict {
			return auth.Identity{}, &UsernameTakenError{Username: req.Username}
		}
		return auth.Identity{}, err
	}

	identity := auth.Identity{
		Username:  resp.Username,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
	}
	if !identity.Valid() {
		// Some gateway builds answer 201 with an empty echo; fall back to
		// what we sent.
		identity = auth.Identity{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
	}
	return identity, nil
}

// doRequest performs one HTTP round trip. Non-2xx responses become
// *GatewayError; connection-level failures become *UnreachableError.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) (int, error) {
	url := strings.TrimRight(c.baseURL, "/") + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, &UnreachableError{Cause: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return httpResp.StatusCode, &GatewayError{
			Code:   httpResp.StatusCode,
			Detail: errResp.Detail,
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return httpResp.StatusCode, fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return httpResp.StatusCode, nil
}

// TokenFingerprint returns a short stable fingerprint of a token for
// logs and the activity journal. The raw token is never logged.
func TokenFingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := xxhash.Sum64String(token)
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
