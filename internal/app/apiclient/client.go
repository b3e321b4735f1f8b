package apiclient

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
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrCanceled - запрос прерван вызывающим кодом или по таймауту
	ErrCanceled = errors.New("request canceled")
	// ErrTransport - сетевая ошибка или неразборчивый ответ
	ErrTransport = errors.New("transport failure")
)

// StatusError - бизнес-ошибка бэкенда: не-2xx ответ или success=false
type StatusError struct {
	Status  int
	Message string
	Details any
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.Status, e.Message)
}

// TokenSource отдает текущий bearer токен
type TokenSource interface {
	Token() string
}

// StaticToken - неизменяемый токен (CLI)
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type tokenKey struct{}

// ContextWithToken кладет токен запроса в контекст, он имеет приоритет над TokenSource клиента
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext возвращает токен, положенный ContextWithToken
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

func WithTokens(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает корень API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL собирает адрес {apiBase}/{endpoint}/{segments...}. Один ведущий слэш у endpoint отбрасывается.
func (c *Client) URL(endpoint string, segments ...string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	parts := append([]string{c.baseURL, endpoint}, segments...)
	return strings.Join(parts, "/")
}

func (c *Client) token(ctx context.Context) string {
	if token, ok := TokenFromContext(ctx); ok {
		return token
	}
	if c.tokens != nil {
		return c.tokens.Token()
	}
	return ""
}

// GetJSON выполняет GET и декодирует JSON ответ в out
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

// PutJSON выполняет PUT с JSON телом
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

// PostJSON выполняет POST с JSON телом
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

// GetBinary скачивает файл с указанным Accept
func (c *Client) GetBinary(ctx context.Context, path string, query url.Values, accept string) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, accept)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", wrapTransport(ctx, err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = accept
	}
	return body, contentType, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := c.do(ctx, method, path, nil, reader, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, accept string) (*http.Response, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.URL(path)
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx); token != "" {
		if !strings.HasPrefix(token, "Bearer ") {
			token = "Bearer " + token
		}
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	logrus.WithFields(logrus.Fields{
		"method":   method,
		"url":      target,
		"duration": time.Since(start),
	}).Debug("backend request")
	if err != nil {
		return nil, wrapTransport(ctx, err)
	}
	return resp, nil
}

func wrapTransport(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// envelope - общие поля ответа бэкенда
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	statusErr := &StatusError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var env envelope
	if json.Unmarshal(raw, &env) == nil {
		if env.Message != "" {
			statusErr.Message = env.Message
		}
		statusErr.Details = env.Errors
	}
	return statusErr
}

func decode(resp *http.Response, out any) error {
	if err := checkStatus(resp); err != nil {
		return err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapTransport(resp.Request.Context(), err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && !*env.Success {
		return &StatusError{Status: resp.StatusCode, Message: env.Message, Details: env.Errors}
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	return nil
}
