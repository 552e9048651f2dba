package clog

import (
	"io"
	"os"

	"github.com/apex/log"
)

var globalHandler = NewHandler(os.Stdout)

// Setup installs the package handler as the apex/log handler. Call once at
// daemon startup before anything logs.
func Setup() *Handler {
	log.SetHandler(globalHandler)
	return globalHandler
}

// GlobalHandler returns the handler Setup installs.
func GlobalHandler() *Handler {
	return globalHandler
}

// SetGlobalOutput redirects the global handler to w.
func SetGlobalOutput(w io.WriteCloser) {
	globalHandler.SetOutput(w)
}

// SetGlobalLevelFromString parses s as a log level and applies it globally.
func SetGlobalLevelFromString(s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	log.SetLevel(level)

	return nil
}
