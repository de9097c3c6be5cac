package client

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// decodeContent replaces resp.Body with a decoding reader. Transport leaves
// bodies encoded when Accept-Encoding was set by the caller.
func decodeContent(resp *http.Response) error {
	encoding := strings.ToLower(strings.TrimSpace(
		resp.Header.Get("Content-Encoding")))

	var r io.Reader
	switch encoding {
	case "", "identity":
		return nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("gzip body: %w", err)
		}
		r = zr
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("deflate body: %w", err)
		}
		r = zr
	case "br":
		r = brotli.NewReader(resp.Body)
	default:
		return fmt.Errorf("%w: %q", ErrContentEncoding, encoding)
	}

	resp.Body = &decodedBody{Reader: r, body: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return nil
}

type decodedBody struct {
	io.Reader
	body io.ReadCloser
}

func (self *decodedBody) Close() error {
	if c, ok := self.Reader.(io.Closer); ok {
		c.Close()
	}
	return self.body.Close() //nolint:wrapcheck // as is
}
