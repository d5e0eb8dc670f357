// Package store defines the key-value storage contract the list and the
// access gate persist through, and opens the configured backend.
package store

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/smartlist/internal/store/jsonstore"
	"github.com/idilsaglam/smartlist/internal/store/memstore"
	"github.com/idilsaglam/smartlist/internal/store/sqlitestore"
)

// Fixed storage keys.
const (
	KeyProducts = "smartlist-products"
	KeyDiscount = "smartlist-discount"
	KeyGate     = "framer_pw_auth"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// KV is a string-to-string store with local-storage semantics.
// A missing key is reported with ok=false, never as an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Open returns the backend named by backend, rooted at dataDir. The returned
// closer releases backend resources and is never nil. log may be nil.
func Open(backend, dataDir string, log *zap.Logger) (KV, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return jsonstore.New(dataDir, jsonstore.WithLogger(log)), nopCloser{}, nil
	case BackendSQLite:
		s, err := sqlitestore.Open(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		return s, s, nil
	case BackendMemory:
		return memstore.New(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
