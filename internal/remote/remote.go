// Package remote defines the versioned-document store the synchronizer
// writes through, plus its concrete backends. Each backend exposes one
// durable document and an opaque version token implementing optimistic
// concurrency: a Put carrying a stale token must fail with
// common.ErrVersionConflict instead of clobbering a concurrent write.
package remote

import "context"

// Document is the durable snapshot content together with the version token
// it was read at. An empty token means the backend could not attest a
// version (e.g. an unauthenticated public read).
type Document struct {
	Content []byte
	Token   string
}

// Store is a versioned single-document API.
//
// Fetch returns the current document. Put writes new content conditioned on
// token being the current version; it returns the token of the written
// revision. Backends fail distinctly with common.ErrNoCredential,
// common.ErrVersionConflict, or an error wrapping common.ErrRemote.
type Store interface {
	Fetch(ctx context.Context) (*Document, error)
	Put(ctx context.Context, content []byte, token string) (string, error)
}
