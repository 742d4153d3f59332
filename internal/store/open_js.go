//go:build js && wasm

package store

import "context"

// Open returns the IndexedDB store in the browser. dir names the database;
// an empty dir falls back to memory.
func Open(ctx context.Context, dir string) (Store, error) {
	if dir == "" {
		return NewMemoryStore(), nil
	}
	return OpenIDB(ctx, dir)
}
