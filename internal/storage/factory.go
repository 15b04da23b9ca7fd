package storage

import "fmt"

// NewStore builds the backend selected by kind. An empty kind falls back to
// the in-memory store; the sqlite kind needs a binary built with the sqlite
// tag. The path argument is only consulted by the sqlite backend.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes backends holding external resources. Backends
// without a Close method, like the memory store, are left alone.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
