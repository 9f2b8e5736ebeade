package supabase

import (
	"github.com/NeuralTrust/supaquery/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

// Option is a function that configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client httpx.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithSchema sets the database schema sent in Accept-Profile. An empty schema omits the header.
func WithSchema(schema string) Option {
	return func(c *Client) {
		c.schema = schema
	}
}

// WithHeaders adds headers to every request, overriding the defaults.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers.Set(k, v)
		}
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CountMethod selects how the service computes the total row count.
type CountMethod string

const (
	CountExact     CountMethod = "exact"
	CountPlanned   CountMethod = "planned"
	CountEstimated CountMethod = "estimated"
)

type SelectOption func(*SelectBuilder)

// WithCount asks the service to report the total number of rows.
func WithCount(method CountMethod) SelectOption {
	return func(s *SelectBuilder) {
		s.count = method
	}
}
