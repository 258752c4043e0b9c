package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
	"golang.org/x/text/encoding/unicode"
)

// Defaults applied by NewClient.
const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 20 * time.Second

	// DefaultUserAgent is a browser-like identifier; the trending page serves
	// a reduced document to unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// maxRedirects stops redirect loops.
	maxRedirects = 10

	// sniffLen is how much of the body charset detection looks at.
	sniffLen = 1024
)

// Client performs single-shot HTTP GET requests and decodes the body as text.
//
// Design decision: We never retry inside the client. A failed request is
// reported once and the caller decides whether the failure is fatal (listing
// page) or degrades to an empty result (README).
type Client struct {
	// httpClient is the underlying client, possibly routed through a proxy.
	httpClient *http.Client

	// userAgent is sent with every request.
	userAgent string

	// headers are added to every request (e.g. Authorization).
	headers map[string]string

	// maxBodySize caps the number of body bytes read.
	maxBodySize int64

	// timeout bounds each request.
	timeout time.Duration

	// proxyAddress is the SOCKS5 proxy in "host:port" form, empty for direct.
	proxyAddress string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithBearerToken sends "Authorization: Bearer <token>" when token is set.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.headers["Authorization"] = "Bearer " + token
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithSOCKS5Proxy routes every request through the SOCKS5 proxy at address.
func WithSOCKS5Proxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithHTTPClient replaces the underlying HTTP client. Proxy settings are
// ignored when a client is supplied. Mainly useful in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client. It fails only when the proxy address is invalid.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		userAgent:   DefaultUserAgent,
		headers:     make(map[string]string),
		maxBodySize: DefaultMaxBodySize,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		hc, err := c.newHTTPClient()
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	}

	return c, nil
}

// newHTTPClient builds the HTTP client, optionally dialing through SOCKS5.
func (c *Client) newHTTPClient() (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport

	if c.proxyAddress != "" {
		if !isValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// isValidProxyAddress checks for "host:port" with a port in 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

// GetText fetches rawURL and returns the body as UTF-8 text.
//
// The body is converted from the charset named by a BOM, the Content-Type
// header or an HTML meta tag. Without one it is read as UTF-8, and any
// invalid UTF-8 sequence is replaced with U+FFFD. Non-2xx responses return
// ErrUnexpectedStatus.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,text/plain,text/markdown;q=0.9,*/*;q=0.8")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read body of %s: %w", rawURL, err)
	}

	text, err := decodeText(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode body of %s: %w", rawURL, err)
	}
	return text, nil
}

// decodeText converts data to UTF-8.
//
// charset.DetermineEncoding guesses windows-1252 for an ASCII-only prefix
// with no declared charset. That guess is discarded: undeclared bodies are
// UTF-8, so a README whose first non-ASCII heading sits past the sniffed
// prefix keeps its text.
func decodeText(data []byte, contentType string) (string, error) {
	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if name != "utf-8" && (certain || declaresCharset(data)) {
		converted, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		data = converted
	}

	text, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// declaresCharset reports whether the sniffed prefix names a charset in a
// meta tag, as opposed to DetermineEncoding falling back to its default.
func declaresCharset(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.Contains(bytes.ToLower(data), []byte("charset"))
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// ProxyAddress returns the configured SOCKS5 proxy, or "" for direct access.
func (c *Client) ProxyAddress() string {
	return c.proxyAddress
}
