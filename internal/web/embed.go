// Package web serves the embedded console page.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFiles embed.FS

// GetFileSystem returns the embedded filesystem with the static folder as root.
func GetFileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}

// Handler serves index.html at the root and any other embedded asset by path
func Handler() (http.Handler, error) {
	staticFS, err := GetFileSystem()
	if err != nil {
		return nil, err
	}
	return http.FileServer(http.FS(staticFS)), nil
}
