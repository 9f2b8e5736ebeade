package httpx

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxResponseBodySize = 100 * 1024 * 1024 // 100MB
	DefaultAcceptEncoding      = "gzip, br"
)

type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// FastHTTPClientOptions contains configuration for the FastHTTP client
type FastHTTPClientOptions struct {
	// Timeout bounds reads and writes when the request context has no deadline
	Timeout time.Duration

	InsecureSkipVerify bool

	MaxResponseBodySize int

	// UserAgent is sent when the request does not set one
	UserAgent string
}

type FastHTTPClientOption func(*FastHTTPClientOptions)

func WithTimeout(timeout time.Duration) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.Timeout = timeout
	}
}

func WithInsecureSkipVerify(skip bool) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.InsecureSkipVerify = skip
	}
}

func WithMaxResponseBodySize(size int) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.MaxResponseBodySize = size
	}
}

func WithUserAgent(userAgent string) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.UserAgent = userAgent
	}
}

type FastHTTPClient struct {
	client    *fasthttp.Client
	userAgent string
}

// NewFastHTTPClient creates a Client backed by fasthttp. Response bodies are
// decoded according to their Content-Encoding before being returned.
func NewFastHTTPClient(opts ...FastHTTPClientOption) Client {
	options := &FastHTTPClientOptions{
		Timeout:             DefaultTimeout,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
	}
	for _, opt := range opts {
		opt(options)
	}

	client := &fasthttp.Client{
		MaxResponseBodySize: options.MaxResponseBodySize,
	}
	if options.Timeout > 0 {
		client.ReadTimeout = options.Timeout
		client.WriteTimeout = options.Timeout
	}
	if options.InsecureSkipVerify {
		client.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // intentionally configurable
		}
	}

	return &FastHTTPClient{
		client:    client,
		userAgent: options.UserAgent,
	}
}

func (c *FastHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if req.URL == nil {
		return nil, errors.New("request url is required")
	}
	ctx := req.Context()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(fastReq)
	defer fasthttp.ReleaseResponse(fastResp)

	fastReq.SetRequestURI(req.URL.String())
	fastReq.Header.SetMethod(req.Method)
	if req.Host != "" {
		fastReq.Header.SetHost(req.Host)
	} else if req.URL.Host != "" {
		fastReq.Header.SetHost(req.URL.Host)
	}

	for key, values := range req.Header {
		for i, value := range values {
			if i == 0 {
				fastReq.Header.Set(key, value)
				continue
			}
			fastReq.Header.Add(key, value)
		}
	}
	if req.Header.Get("Accept-Encoding") == "" {
		fastReq.Header.Set("Accept-Encoding", DefaultAcceptEncoding)
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		fastReq.Header.SetUserAgent(c.userAgent)
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		fastReq.SetBodyRaw(body)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(fastReq, fastResp, deadline)
	} else {
		err = c.client.Do(fastReq, fastResp)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
	}

	encoding := string(fastResp.Header.Peek("Content-Encoding"))
	body, decoded, err := DecodeChain(encoding, fastResp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	// fastResp is released on return; its body buffer is reused
	bodyCopy := make([]byte, len(body))
	copy(bodyCopy, body)

	headers := make(http.Header)
	fastResp.Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if decoded && (strings.EqualFold(k, "Content-Encoding") || strings.EqualFold(k, "Content-Length")) {
			return
		}
		headers.Add(k, string(value))
	})

	statusCode := fastResp.StatusCode()
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(bodyCopy)),
		ContentLength: int64(len(bodyCopy)),
		Request:       req,
	}, nil
}
