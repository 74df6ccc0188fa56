package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get, Patch and PutVersioned when no
	// document with the given id exists.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned by PutVersioned when the stored version no
	// longer matches the one the caller read.
	ErrConflict = errors.New("document version conflict")
	// ErrUnavailable wraps every backing-store failure (connectivity,
	// encoding) so callers can classify them without matching message text.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the document-store surface the services depend on. Collections are
// flat id → document maps; Put is a full replace with create-or-overwrite
// semantics and Patch merges only the named fields.
type Store interface {
	Get(ctx context.Context, collection, id string, out interface{}) error
	Put(ctx context.Context, collection, id string, doc interface{}) error
	// PutVersioned replaces the document only if its stored "version" field
	// still equals expected, and bumps it by one. expected == 0 means the
	// caller read a document that predates versioning (or is creating one).
	PutVersioned(ctx context.Context, collection, id string, doc interface{}, expected int64) error
	Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	Exists(ctx context.Context, collection, id string) (bool, error)
	// List decodes every document in the collection into out (a pointer to a
	// slice), sorted ascending by orderBy when it is non-empty.
	List(ctx context.Context, collection, orderBy string, out interface{}) error
}
