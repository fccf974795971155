package download

import "github.com/pkg/browser"

// BrowserOpener opens the URL in the user's default browser
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

var _ Opener = BrowserOpener{}
