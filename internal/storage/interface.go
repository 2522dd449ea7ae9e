package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) by Retrieve and Delete for a missing artifact
var ErrNotFound = errors.New("artifact not found")

// StorageInterface defines the contract for archiving report artifacts.
// List returns names in ascending order.
type StorageInterface interface {
	Store(ctx context.Context, name string, data []byte) error
	Retrieve(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, name string) error
}
