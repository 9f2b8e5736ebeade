package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// DecodeChain undoes the encodings listed in a Content-Encoding header value,
// last applied first (e.g. "gzip, br"). Supported: br, gzip, zstd, deflate
// (zlib-wrapped or raw). It reports whether the body changed.
func DecodeChain(contentEncoding string, body []byte) ([]byte, bool, error) {
	if strings.TrimSpace(contentEncoding) == "" {
		return body, false, nil
	}
	encodings := strings.Split(contentEncoding, ",")
	changed := false
	for i := len(encodings) - 1; i >= 0; i-- {
		enc := strings.TrimSpace(strings.ToLower(encodings[i]))
		switch enc {
		case "", "identity":
			continue
		}
		out, err := decodeOne(enc, body)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", enc, err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func decodeOne(enc string, body []byte) ([]byte, error) {
	switch enc {
	case "br":
		return io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
	case "gzip", "x-gzip":
		gr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return readAndClose(gr)
	case "zstd":
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return io.ReadAll(dec)
	case "deflate":
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			return readAndClose(zr)
		}
		return readAndClose(flate.NewReader(bytes.NewReader(body)))
	default:
		return nil, fmt.Errorf("unsupported content-encoding")
	}
}

func readAndClose(r io.ReadCloser) ([]byte, error) {
	out, err := io.ReadAll(r)
	cerr := r.Close()
	if err != nil {
		return nil, err
	}
	if cerr != nil {
		return nil, cerr
	}
	return out, nil
}
