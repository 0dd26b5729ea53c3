// Package jsonrpc implements a JSON-RPC 2.0 over HTTP POST transport.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/blockchain"
)

const maxResponseBytes = 16 << 20

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// Response is a decoded JSON-RPC envelope. Result keeps the raw JSON, including a literal null.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *ErrorObject    `json:"error"`
}

// ErrorObject is the error member of a JSON-RPC response.
type ErrorObject struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Transport sends single JSON-RPC calls to one endpoint. It is safe for concurrent use.
type Transport struct {
	url        string
	masked     string
	timeout    time.Duration
	httpClient *http.Client
	idCounter  atomic.Uint64
}

// NewTransport builds a Transport. timeout bounds each call.
func NewTransport(rawURL string, timeout time.Duration) (*Transport, error) {
	if rawURL == "" {
		return nil, errors.New("rpc url is required")
	}
	masked := blockchain.MaskURL(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url %s: invalid url", masked)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}
	if timeout <= 0 {
		return nil, errors.New("rpc timeout must be positive")
	}

	return &Transport{
		url:     rawURL,
		masked:  masked,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}, nil
}

// Endpoint returns the endpoint URL with secrets masked.
func (t *Transport) Endpoint() string {
	return t.masked
}

// Send performs one request/response round trip. Any error is a *blockchain.TransportError;
// error objects in the response are left to Classify.
func (t *Transport) Send(ctx context.Context, method string, params []any) (*Response, error) {
	if params == nil {
		params = []any{}
	}
	payload, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      t.idCounter.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, t.fail(method, fmt.Errorf("encode request: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return nil, t.fail(method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, t.fail(method, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, t.fail(method, fmt.Errorf("unexpected http status %d", resp.StatusCode))
	}

	var decoded Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, t.fail(method, fmt.Errorf("decode response: %w", err))
	}
	return &decoded, nil
}

// Close releases idle keep-alive connections.
func (t *Transport) Close() {
	t.httpClient.CloseIdleConnections()
}

func (t *Transport) fail(method string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = t.masked
	}
	return &blockchain.TransportError{Method: method, Err: err}
}
