// Package httpenc decodes compressed HTTP response bodies.
//
// The Go transport decompresses gzip only when it sets Accept-Encoding itself,
// clients that advertise their own encodings must decode the body.
package httpenc

import (
	"bufio"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Accepted encodings
const (
	// AcceptGzipDeflate is the value of Accept-Encoding for gzip and deflate
	AcceptGzipDeflate = "gzip, deflate"
	// AcceptAll is the value of Accept-Encoding for all supported encodings
	AcceptAll = "gzip, deflate, zstd"
)

// DecodeBody returns the reader of the decoded body for the content encoding.
// Unknown and identity encodings are returned as is.
func DecodeBody(body io.Reader, contentEncoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, errors.Wrap(err, "invalid gzip body")
		}
		return r, nil
	case "deflate":
		br := bufio.NewReader(body)
		if isZlib(br) {
			r, err := zlib.NewReader(br)
			if err != nil {
				return nil, errors.Wrap(err, "invalid deflate body")
			}
			return r, nil
		}
		// raw deflate without zlib header
		return flate.NewReader(br), nil
	case "zstd":
		d, err := zstd.NewReader(body)
		if err != nil {
			return nil, errors.Wrap(err, "invalid zstd body")
		}
		return d.IOReadCloser(), nil
	default:
		return io.NopCloser(body), nil
	}
}

// isZlib checks the zlib header: CM=8 and the header checksum
func isZlib(br *bufio.Reader) bool {
	hdr, err := br.Peek(2)
	if err != nil {
		return false
	}
	return hdr[0]&0x0f == 8 && (uint16(hdr[0])<<8|uint16(hdr[1]))%31 == 0
}

// Transport advertises the accepted encodings and decodes the responses
type Transport struct {
	// Base is the underlying transport, http.DefaultTransport if nil
	Base http.RoundTripper
	// AcceptEncoding is the value of Accept-Encoding header, AcceptAll if empty
	AcceptEncoding string
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	accept := t.AcceptEncoding
	if accept == "" {
		accept = AcceptAll
	}

	req = req.Clone(req.Context())
	req.Header.Set("Accept-Encoding", accept)

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	enc := resp.Header.Get("Content-Encoding")
	if enc == "" || strings.EqualFold(enc, "identity") {
		return resp, nil
	}

	body, err := DecodeBody(resp.Body, enc)
	if err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	resp.Body = &decodedBody{ReadCloser: body, raw: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

type decodedBody struct {
	io.ReadCloser
	raw io.Closer
}

func (b *decodedBody) Close() error {
	err := b.ReadCloser.Close()
	if rerr := b.raw.Close(); err == nil {
		err = rerr
	}
	return err
}
