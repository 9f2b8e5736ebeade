package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponse_RowCount(t *testing.T) {
	tests := []struct {
		name   string
		resp   *Response
		rows   int
		isJSON bool
	}{
		{name: "two rows", resp: &Response{Data: []byte(`[{"id":1},{"id":2}]`)}, rows: 2, isJSON: true},
		{name: "empty array", resp: &Response{Data: []byte(`[]`)}, rows: 0, isJSON: true},
		{name: "object", resp: &Response{Data: []byte(`{"id":1}`)}, rows: 0, isJSON: false},
		{name: "not json", resp: &Response{Data: []byte(`oops`)}, rows: 0, isJSON: false},
		{name: "empty body", resp: &Response{}, rows: 0, isJSON: false},
		{name: "nil response", resp: nil, rows: 0, isJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, ok := tt.resp.RowCount()
			assert.Equal(t, tt.rows, rows)
			assert.Equal(t, tt.isJSON, ok)
		})
	}
}
