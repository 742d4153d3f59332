//go:build js && wasm

package store

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/hack-pad/go-indexeddb/idb"
)

const idbObjectStore = "blobs"

// IDBStore keeps blobs as Uint8Array values in one IndexedDB object store.
type IDBStore struct {
	db *idb.Database
}

// OpenIDB opens (and on first use creates) the named database.
func OpenIDB(ctx context.Context, name string) (*IDBStore, error) {
	req, err := idb.Global().Open(ctx, name, 1, func(db *idb.Database, oldVersion, newVersion uint) error {
		_, err := db.CreateObjectStore(idbObjectStore, idb.ObjectStoreOptions{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store: open indexeddb %s: %w", name, err)
	}
	db, err := req.Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: open indexeddb %s: %w", name, err)
	}
	return &IDBStore{db: db}, nil
}

func (s *IDBStore) objectStore(mode idb.TransactionMode) (*idb.Transaction, *idb.ObjectStore, error) {
	txn, err := s.db.Transaction(mode, idbObjectStore)
	if err != nil {
		return nil, nil, err
	}
	os, err := txn.ObjectStore(idbObjectStore)
	if err != nil {
		return nil, nil, err
	}
	return txn, os, nil
}

func (s *IDBStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	_, os, err := s.objectStore(idb.TransactionReadOnly)
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", key, err)
	}
	req, err := os.Get(js.ValueOf(key))
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", key, err)
	}
	v, err := req.Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", key, err)
	}
	if v.IsUndefined() || v.IsNull() {
		return nil, ErrNotFound
	}
	out := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(out, v)
	return out, nil
}

func (s *IDBStore) Put(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	txn, os, err := s.objectStore(idb.TransactionReadWrite)
	if err != nil {
		return fmt.Errorf("store: put %s: %w", key, err)
	}
	arr := js.Global().Get("Uint8Array").New(len(value))
	js.CopyBytesToJS(arr, value)
	req, err := os.PutKey(js.ValueOf(key), arr)
	if err != nil {
		return fmt.Errorf("store: put %s: %w", key, err)
	}
	if _, err := req.Await(ctx); err != nil {
		return fmt.Errorf("store: put %s: %w", key, err)
	}
	return txn.Await(ctx)
}

func (s *IDBStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	txn, os, err := s.objectStore(idb.TransactionReadWrite)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	req, err := os.Delete(js.ValueOf(key))
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	if err := req.Await(ctx); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return txn.Await(ctx)
}
