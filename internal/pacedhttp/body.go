package pacedhttp

import (
	"bytes"
	"io"
	"net/http"

	"github.com/JPK85/patentpack/pkg/errors"
)

// drainBody reads and buffers req's body (if any) so Do can replay the same
// bytes across retries, since an *http.Request body reader is consumed on
// the first send.
func drainBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderTransport, "pacedhttp: failed to buffer request body")
	}
	return b, nil
}

func newReaderFromBytes(b []byte) io.Reader {
	return bytes.NewReader(b)
}
