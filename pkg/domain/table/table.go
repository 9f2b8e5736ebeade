package table

import (
	"context"

	"github.com/valyala/fastjson"
)

// Response holds the rows of a read exactly as the service returned them.
type Response struct {
	Data   []byte
	Count  *int64
	Status int
}

// RowCount reports the number of elements in Data when it is a JSON array.
func (r *Response) RowCount() (int, bool) {
	if r == nil || len(r.Data) == 0 {
		return 0, false
	}
	v, err := fastjson.ParseBytes(r.Data)
	if err != nil {
		return 0, false
	}
	arr, err := v.Array()
	if err != nil {
		return 0, false
	}
	return len(arr), true
}

// Reader returns every row of a table as the raw JSON array.
type Reader interface {
	SelectAll(ctx context.Context, table, columns string) (*Response, error)
}
