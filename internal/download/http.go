package download

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
)

// ResponseSink streams the document back to a browser as an attachment,
// which makes the browser show its save dialog.
type ResponseSink struct {
	W http.ResponseWriter
}

func (s ResponseSink) Save(name string, data []byte) (string, error) {
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := s.W.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	header.Set("Content-Length", strconv.Itoa(len(data)))
	s.W.WriteHeader(http.StatusOK)

	if _, err := s.W.Write(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryStarted, err)
	}
	return "", nil
}

// RedirectOpener sends the browser straight to the service's download URL
type RedirectOpener struct {
	W http.ResponseWriter
	R *http.Request
}

func (o RedirectOpener) Open(url string) error {
	http.Redirect(o.W, o.R, url, http.StatusFound)
	return nil
}
