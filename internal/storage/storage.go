// Package storage is the durable string-keyed store that holds the task
// collection and the display mode between sessions.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a string key-value store. A missing key is reported with ok=false
// and a nil error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the sqlite file for BackendSQLite and the directory for
	// BackendBadger. An empty badger path runs badger in memory.
	Path string
}

func Open(opts Options) (Store, error) {
	switch normalize(opts.Backend) {
	case "", BackendSQLite:
		return OpenSQLite(opts.Path)
	case BackendBadger:
		return OpenBadger(opts.Path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendSQLite, BackendBadger, BackendMemory}
}

func ValidBackend(name string) bool {
	switch normalize(name) {
	case "", BackendSQLite, BackendBadger, BackendMemory:
		return true
	}
	return false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
