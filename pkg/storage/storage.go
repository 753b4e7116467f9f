// Package storage keeps uploaded files (CVs, company logos) and hands back
// the public URL they can be fetched from.
package storage

import (
	"context"
	"io"
)

type Store interface {
	// Put saves r under key and returns the public URL of the object
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}
