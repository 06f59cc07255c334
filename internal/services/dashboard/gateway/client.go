package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/louisbranch/culater/internal/platform/otel"
	"github.com/louisbranch/culater/internal/platform/requestctx"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/culater/internal/services/dashboard/session"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/louisbranch/culater/internal/services/dashboard/gateway"

	// DefaultSignupPath is the primary signup route; some deployments expose
	// the users-service alias instead.
	DefaultSignupPath = "/api/auth/signup"
	// UsersSignupPath is the alternate signup route.
	UsersSignupPath = "/api/users/signup"

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// HTTPDoer sends one HTTP request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	HTTPClient HTTPDoer
	SignupPath string
}

// Client calls the remote dashboard API.
type Client struct {
	baseURL    *url.URL
	http       HTTPDoer
	tokens     *session.TokenStore
	signupPath string
	tracer     trace.Tracer
}

// New builds a Client. tokens is required: it supplies the bearer credential
// and is cleared when the server rejects it.
func New(cfg Config, tokens *session.TokenStore) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	parsed, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	signupPath := strings.TrimSpace(cfg.SignupPath)
	if signupPath == "" {
		signupPath = DefaultSignupPath
	}
	return &Client{
		baseURL:    parsed,
		http:       httpClient,
		tokens:     tokens,
		signupPath: signupPath,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// call describes one outbound request.
type call struct {
	name   string
	method string
	path   string
	body   any
	out    any
	// sessionBound marks endpoints where 401 means the credential is dead.
	// Login and signup use 401 for bad input instead.
	sessionBound bool
	// rejectedMessage overrides an empty server message for a status.
	rejectedMessage map[int]string
}

func (c *Client) do(ctx context.Context, in call) (err error) {
	ctx, span := c.tracer.Start(ctx, "gateway."+in.name, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		}
		span.End()
	}()

	req, err := c.newRequest(ctx, in)
	if err != nil {
		return apperrors.Unknown(err)
	}
	span.SetAttributes(
		attribute.String("http.request.method", in.method),
		attribute.String("url.path", in.path),
		attribute.String("request.id", req.Header.Get(requestIDHeader)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Network(fmt.Errorf("%s %s: %w", in.method, in.path, err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeSuccess(resp.Body, in.out)
	}

	message := errorMessage(resp.Body)
	if message == "" {
		message = in.rejectedMessage[resp.StatusCode]
	}
	if resp.StatusCode == http.StatusUnauthorized && in.sessionBound {
		if message == "" {
			message = "session expired"
		}
		if clearErr := c.tokens.Clear(ctx); clearErr != nil {
			return errors.Join(apperrors.Unauthenticated(message), clearErr)
		}
		return apperrors.Unauthenticated(message)
	}
	if resp.StatusCode >= 400 {
		return apperrors.Rejected(resp.StatusCode, message)
	}
	return apperrors.Unknown(fmt.Errorf("%s %s: unexpected status %s", in.method, in.path, resp.Status))
}

func (c *Client) newRequest(ctx context.Context, in call) (*http.Request, error) {
	var body io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", in.name, err)
		}
		body = bytes.NewReader(payload)
	}
	endpoint := c.baseURL.JoinPath(in.path)
	req, err := http.NewRequestWithContext(ctx, in.method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", in.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := requestctx.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)
	if sess, ok := c.tokens.Load(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+sess.Credential)
	}
	return req, nil
}

func decodeSuccess(body io.Reader, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Unknown(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// errorMessage extracts the server's message from {"error"}, {"msg"} or
// {"message"} bodies, falling back to short plain-text bodies.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var envelope struct {
		Error   string `json:"error"`
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, value := range []string{envelope.Error, envelope.Msg, envelope.Message} {
			if strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
