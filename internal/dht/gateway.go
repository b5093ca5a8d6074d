package dht

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"diddht/internal/didht"
	"diddht/pkg/platform/sentinel"
)

const defaultGatewayTimeout = 10 * time.Second

// Gateway relays items to an HTTP DHT gateway that runs the mainline DHT
// node on our behalf. Items are addressed as {base}/{z-base-32 target}.
type Gateway struct {
	baseURL string
	client  *http.Client
}

// GatewayOption configures a Gateway publisher.
type GatewayOption func(*Gateway)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) {
		if c != nil {
			g.client = c
		}
	}
}

// NewGateway constructs a gateway publisher for baseURL.
func NewGateway(baseURL string, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultGatewayTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) Put(ctx context.Context, value []byte) (CommitHash, error) {
	if err := checkValue(value); err != nil {
		return "", err
	}
	target := Target(value)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.itemURL(target.Bytes()), bytes.NewReader(value))
	if err != nil {
		return "", fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway put: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", gatewayStatusError("put", resp)
	}
	return target, nil
}

func (g *Gateway) Get(ctx context.Context, key []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.itemURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, sentinel.ErrNotFound
	}
	if resp.StatusCode/100 != 2 {
		return nil, gatewayStatusError("get", resp)
	}
	value, err := io.ReadAll(io.LimitReader(resp.Body, MaxValueSize+1))
	if err != nil {
		return nil, fmt.Errorf("read gateway body: %w", err)
	}
	if err := verifyTarget(key, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (g *Gateway) itemURL(key []byte) string {
	return g.baseURL + "/" + didht.EncodeKey(key)
}

func gatewayStatusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("gateway %s: status %d: %s", op, resp.StatusCode, msg)
}
