package storage

import (
	"context"
	"fmt"
)

// New returns the archive selected by backend, or nil for "none"
func New(ctx context.Context, backend, localDir, account, container string) (StorageInterface, error) {
	switch backend {
	case "", "none":
		return nil, nil
	case "local":
		local, err := NewLocalStorage(localDir)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "azure":
		azure, err := NewBlobArchive(ctx, account, container)
		if err != nil {
			return nil, err
		}
		return azure, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
