package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-Id"

// TokenSource supplies the bearer token for authenticated requests. An empty
// string means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
	Tokens  TokenSource // optional
}

func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid api base url %q: %v", baseURL, err))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: u, HTTP: httpClient, Tokens: tokens}
}

// Do issues a JSON request against the API. A non-nil in is encoded as the
// request body; a non-nil out receives the decoded 2xx response body. Non-2xx
// responses and transport failures come back as *Error.
func (c *Client) Do(ctx context.Context, method, path, rawQuery string, in, out any) error {
	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.BaseURL.ResolveReference(rel)

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		if tok := c.Tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	req.Header.Set(HeaderCorrelationID, uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// No response at all: surface a generic connectivity message.
		return &Error{Kind: KindRemote, Message: "cannot reach the shop service"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindRemote, Status: resp.StatusCode, Message: "invalid response from the shop service"}
	}
	return nil
}

// decodeError turns a non-2xx response into an *Error, preferring the
// server's own message. The backend answers with either {"message": ...} or
// {"error": ...} depending on the endpoint.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else if payload.Error != "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		if trimmed := strings.TrimSpace(string(raw)); trimmed != "" && !strings.HasPrefix(trimmed, "{") {
			msg = trimmed
		} else {
			msg = http.StatusText(resp.StatusCode)
		}
	}
	return &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
}
