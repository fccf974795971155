// Package download holds the save targets and fallbacks used when a
// generated document is retrieved.
package download

import "errors"

// ErrDeliveryStarted is wrapped by a Sink error once part of the document has
// already reached its destination. No fallback can be attempted after that.
var ErrDeliveryStarted = errors.New("document delivery already started")

// Sink receives the bytes of a fetched document under its derived file name.
// The returned location is where the document ended up, if that is knowable.
type Sink interface {
	Save(name string, data []byte) (string, error)
}

// Opener hands a download URL to something that can fetch it directly,
// used when the byte fetch fails.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error {
	return f(url)
}
