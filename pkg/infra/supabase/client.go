package supabase

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/NeuralTrust/supaquery/pkg/common"
	"github.com/NeuralTrust/supaquery/pkg/infra/httpx"
	"github.com/NeuralTrust/supaquery/pkg/version"
	"github.com/sirupsen/logrus"
)

var (
	ErrURLRequired = errors.New("supabase_url is required")
	ErrKeyRequired = errors.New("supabase_key is required")
	ErrInvalidURL  = errors.New("invalid supabase url")
)

var urlPattern = regexp.MustCompile(`^(https?)://.+`)

// Client talks to the REST endpoint of a hosted Supabase project.
type Client struct {
	url     string
	key     string
	restURL string
	schema  string
	headers http.Header
	http    httpx.Client
	logger  *logrus.Logger
}

// NewClient binds a client to the project url and API key. Both values are
// stored as given.
func NewClient(url, key string, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, ErrURLRequired
	}
	if key == "" {
		return nil, ErrKeyRequired
	}
	if !urlPattern.MatchString(url) {
		return nil, ErrInvalidURL
	}

	headers := make(http.Header)
	headers.Set(common.APIKeyHeader, key)
	headers.Set(common.AuthorizationHeader, "Bearer "+key)
	headers.Set(common.ClientInfoHeader, version.ClientInfo())
	headers.Set("Accept", "application/json")

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	c := &Client{
		url:     url,
		key:     key,
		restURL: strings.TrimRight(url, "/") + common.RESTPath,
		schema:  common.DefaultSchema,
		headers: headers,
		logger:  silent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpx.NewFastHTTPClient(httpx.WithUserAgent(version.ClientInfo()))
	}
	return c, nil
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) Key() string {
	return c.key
}

func (c *Client) RESTURL() string {
	return c.restURL
}

// From starts a query against the named table.
func (c *Client) From(tableName string) *QueryBuilder {
	return &QueryBuilder{client: c, table: tableName}
}

// Table is an alias of From.
func (c *Client) Table(tableName string) *QueryBuilder {
	return c.From(tableName)
}

func (c *Client) requestHeaders() http.Header {
	h := c.headers.Clone()
	if c.schema != "" && h.Get(common.AcceptProfileHeader) == "" {
		h.Set(common.AcceptProfileHeader, c.schema)
	}
	return h
}
