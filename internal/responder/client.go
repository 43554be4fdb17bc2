// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jeranaias/clara-tui/internal/logging"
)

const (
	// DefaultURL is the reference responder on its default port.
	DefaultURL = "http://127.0.0.1:5000/chat"

	// DefaultTimeout bounds one request/response exchange.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps how much of a reply body is read.
	MaxResponseSize = 1 << 20

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// FallbackReply is used when a successful response carries no text.
const FallbackReply = "Hmm, não entendi bem o que dizer agora."

var (
	// ErrEmptyText is returned before any network activity when the text is
	// blank.
	ErrEmptyText = errors.New("responder: message text is empty")

	// ErrInvalidResponse indicates a 2xx response whose body is not JSON.
	ErrInvalidResponse = errors.New("invalid response body")

	// ErrResponseTooLarge indicates the reply exceeded MaxResponseSize.
	ErrResponseTooLarge = errors.New("response exceeded maximum size")
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// StatusError is a non-2xx answer from the responder.
type StatusError struct {
	Code   int
	Status string
	// Detail is the body's "error" field, else its "message" field, else the
	// HTTP status text.
	Detail string
}

// Error renders as "Erro <code>: <detail>".
func (e *StatusError) Error() string {
	return fmt.Sprintf("Erro %d: %s", e.Code, e.Detail)
}

// TransportError wraps a failure to complete the exchange at all (DNS,
// refused connection, timeout, cancelled context).
type TransportError struct {
	Err error
}

// Error returns the underlying error's description unchanged.
func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// Request is one outbound message.
type Request struct {
	Text   string
	UserID string
}

type requestBody struct {
	Mensagem string `json:"mensagem"`
	UserID   string `json:"user_id"`
}

type replyBody struct {
	Response *string `json:"response"`
}

type errorBody struct {
	Error   any `json:"error"`
	Message any `json:"message"`
}

// Reply is a successful exchange.
type Reply struct {
	Text string
	// Fallback is true when the responder sent no text and FallbackReply was
	// substituted.
	Fallback bool
	// RequestID is the id sent in RequestIDHeader.
	RequestID string
}

// =============================================================================
// CLIENT
// =============================================================================

// Client posts chat messages to a responder endpoint. Safe for concurrent
// use; each Send is an independent request.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a client for the given endpoint URL (DefaultURL when
// empty).
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	return &Client{
		url: endpoint,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		timeout: DefaultTimeout,
	}
}

// WithTimeout sets the per-request timeout (0 leaves only the caller's
// context in charge).
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Send performs exactly one POST. The text is trimmed before sending.
func (c *Client) Send(ctx context.Context, req Request) (Reply, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Reply{}, ErrEmptyText
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(requestBody{Mensagem: text, UserID: req.UserID})
	if err != nil {
		return Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	log := logging.Component("responder")
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn().Err(err).Str("request_id", requestID).Dur("elapsed", time.Since(start)).Msg("request failed")
		return Reply{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body)
	if err != nil {
		return Reply{}, &TransportError{Err: err}
	}

	log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reply{}, statusError(resp, body)
	}

	var rb replyBody
	if err := json.Unmarshal(body, &rb); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if rb.Response == nil || strings.TrimSpace(*rb.Response) == "" {
		return Reply{Text: FallbackReply, Fallback: true, RequestID: requestID}, nil
	}
	return Reply{Text: *rb.Response, RequestID: requestID}, nil
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, MaxResponseSize)
	}
	return body, nil
}

// statusError picks the detail the same way the web client did: error,
// then message, then the status line.
func statusError(resp *http.Response, body []byte) *StatusError {
	e := &StatusError{
		Code:   resp.StatusCode,
		Status: statusText(resp),
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if s := truthy(eb.Error); s != "" {
			e.Detail = s
		} else if s := truthy(eb.Message); s != "" {
			e.Detail = s
		}
	}
	if e.Detail == "" {
		e.Detail = e.Status
	}
	return e
}

// truthy renders a JSON value as text, treating null, false, 0 and "" as
// absent.
func truthy(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// statusText is the reason phrase of the status line ("Internal Server
// Error"), falling back to the standard text for the code.
func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if s := strings.TrimPrefix(resp.Status, prefix); s != resp.Status && s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
