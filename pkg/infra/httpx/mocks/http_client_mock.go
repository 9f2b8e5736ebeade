package mocks

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"
)

type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, ok := args.Get(0).(*http.Response)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *http.Response, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}

// NewResponse builds a response carrying body and the given header pairs.
func NewResponse(status int, body string, headerPairs ...string) *http.Response {
	header := make(http.Header)
	for i := 0; i+1 < len(headerPairs); i += 2 {
		header.Add(headerPairs[i], headerPairs[i+1])
	}
	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:        header,
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		ContentLength: int64(len(body)),
	}
}
