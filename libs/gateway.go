package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"storefront/models"
)

var gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_gateway_requests_total",
	Help: "Outbound backend API requests by method and status.",
}, []string{"method", "status"})

// TokenSource yields the bearer token for outbound calls. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Gateway wraps every call to the backend REST API: it attaches the bearer
// token and normalizes non-2xx bodies into *models.APIError.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

func NewGateway(baseURL string, timeout time.Duration, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// WithTokenSource returns a copy of g that authenticates with tokens.
func (g *Gateway) WithTokenSource(tokens TokenSource) *Gateway {
	clone := *g
	clone.tokens = tokens
	return &clone
}

func (g *Gateway) BaseURL() string { return g.baseURL }

func (g *Gateway) Logger() *zap.Logger { return g.logger }

func (g *Gateway) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return g.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (g *Gateway) Post(ctx context.Context, path string, body, out interface{}) error {
	return g.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (g *Gateway) Put(ctx context.Context, path string, body, out interface{}) error {
	return g.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (g *Gateway) Patch(ctx context.Context, path string, body, out interface{}) error {
	return g.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (g *Gateway) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.send(req, out)
}

// Upload posts a multipart form carrying one file part plus plain fields.
func (g *Gateway) Upload(ctx context.Context, path, field, filename string, file io.Reader, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return g.send(req, out)
}

func (g *Gateway) endpoint(path string, query url.Values) string {
	u := g.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (g *Gateway) send(req *http.Request, out interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		gatewayRequests.WithLabelValues(req.Method, "error").Inc()
		g.logger.Warn("Backend request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &models.NetworkError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()
	gatewayRequests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.NetworkError{Op: "read " + req.URL.Path, Err: err}
	}

	g.logger.Debug("Backend request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NormalizeError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// NormalizeError turns a non-2xx body into an APIError. Bodies that are not
// JSON objects keep their raw text as the message.
func NormalizeError(status int, raw []byte) *models.APIError {
	apiErr := &models.APIError{Status: status}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return apiErr
	}
	if err := json.Unmarshal(raw, &apiErr.Data); err != nil {
		apiErr.Data = models.ErrorBody{Message: text}
	}
	return apiErr
}
