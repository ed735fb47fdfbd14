package s3

import (
	"bytes"
	"io"
)

// bufferBody drains r into memory and returns a seekable reader plus the
// byte count. Uploads are already size-capped by the HTTP layer, so
// buffering a single object is acceptable.
func bufferBody(r io.Reader) (io.ReadSeeker, int64, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(buf.Bytes()), n, nil
}
