package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/NeuralTrust/supaquery/pkg/common"
	domain "github.com/NeuralTrust/supaquery/pkg/domain/errors"
	"github.com/NeuralTrust/supaquery/pkg/domain/table"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

type QueryBuilder struct {
	client *Client
	table  string
}

// Select reads the given columns. Whitespace outside double quotes is
// removed; an empty list selects every column.
func (q *QueryBuilder) Select(columns string, opts ...SelectOption) *SelectBuilder {
	s := &SelectBuilder{
		client:  q.client,
		table:   q.table,
		columns: cleanColumns(columns),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SelectBuilder struct {
	client  *Client
	table   string
	columns string
	count   CountMethod
}

func (s *SelectBuilder) Columns() string {
	return s.columns
}

// Execute issues the read and returns the body as received.
func (s *SelectBuilder) Execute(ctx context.Context) (*table.Response, error) {
	query := url.Values{}
	query.Set("select", s.columns)
	endpoint := s.client.restURL + "/" + url.PathEscape(s.table) + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header = s.client.requestHeaders()
	if s.count != "" {
		req.Header.Set(common.PreferHeader, "count="+string(s.count))
	}

	s.client.logger.WithFields(logrus.Fields{
		"table":   s.table,
		"columns": s.columns,
	}).Debug("executing select")

	resp, err := s.client.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", s.table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeAPIError(resp.StatusCode, body)
		if isTableNotFound(apiErr) {
			return nil, domain.NewTableNotFoundError(s.table, apiErr)
		}
		return nil, apiErr
	}

	return &table.Response{
		Data:   body,
		Count:  parseContentRange(resp.Header.Get(common.ContentRangeHeader)),
		Status: resp.StatusCode,
	}, nil
}

// SelectAll runs From(tableName).Select(columns).Execute(ctx).
func (c *Client) SelectAll(ctx context.Context, tableName, columns string) (*table.Response, error) {
	return c.From(tableName).Select(columns).Execute(ctx)
}

func cleanColumns(columns string) string {
	var b strings.Builder
	quoted := false
	for _, r := range columns {
		if r == '"' {
			quoted = !quoted
		}
		if !quoted && unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return common.AllColumns
	}
	return b.String()
}

// parseContentRange extracts the total from "0-24/3573458" or "*/0".
// An unknown total ("0-24/*") yields nil.
func parseContentRange(value string) *int64 {
	idx := strings.LastIndex(value, "/")
	if idx < 0 {
		return nil
	}
	total, err := strconv.ParseInt(strings.TrimSpace(value[idx+1:]), 10, 64)
	if err != nil {
		return nil
	}
	return &total
}

func decodeAPIError(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{Status: status}

	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil || v.Type() != fastjson.TypeObject {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Code = stringField(v, "code")
	apiErr.Message = stringField(v, "message")
	apiErr.Details = stringField(v, "details")
	apiErr.Hint = stringField(v, "hint")
	if apiErr.Message == "" {
		apiErr.Message = stringField(v, "error")
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func stringField(v *fastjson.Value, key string) string {
	field := v.Get(key)
	if field == nil {
		return ""
	}
	switch field.Type() {
	case fastjson.TypeString:
		return string(field.GetStringBytes())
	case fastjson.TypeNull:
		return ""
	default:
		return field.String()
	}
}

func isTableNotFound(err *domain.APIError) bool {
	switch err.Code {
	case "42P01", "PGRST205":
		return true
	}
	return err.Status == http.StatusNotFound
}
