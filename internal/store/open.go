//go:build !(js && wasm)

package store

import "context"

// Open returns the platform store: files under dir, or memory when dir is empty.
func Open(_ context.Context, dir string) (Store, error) {
	if dir == "" {
		return NewMemoryStore(), nil
	}
	return NewFileStore(dir), nil
}
