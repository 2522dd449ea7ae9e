package storage

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/sirupsen/logrus"
)

// BlobArchive keeps report artifacts as block blobs in one container
type BlobArchive struct {
	client    *azblob.Client
	container string
}

// Ensure BlobArchive implements StorageInterface
var _ StorageInterface = (*BlobArchive)(nil)

// NewBlobArchive connects to https://<account>.blob.core.windows.net with the
// default Azure credential chain and creates the container if needed
func NewBlobArchive(ctx context.Context, account, container string) (*BlobArchive, error) {
	if account == "" {
		return nil, fmt.Errorf("storage account name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azblob.NewClient(fmt.Sprintf("https://%s.blob.core.windows.net/", account), credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	return newBlobArchive(ctx, client, container)
}

func newBlobArchive(ctx context.Context, client *azblob.Client, container string) (*BlobArchive, error) {
	if container == "" {
		return nil, fmt.Errorf("storage container name is required")
	}

	archive := &BlobArchive{client: client, container: container}

	_, err := client.CreateContainer(ctx, container, nil)
	switch {
	case err == nil:
		logrus.Infof("Created report container %s", container)
	case bloberror.HasCode(err, bloberror.ContainerAlreadyExists):
		logrus.Debugf("Report container %s already exists", container)
	default:
		return nil, fmt.Errorf("failed to ensure container %s: %w", container, err)
	}

	return archive, nil
}

// Store uploads an artifact with the content type matching its kind
func (a *BlobArchive) Store(ctx context.Context, name string, data []byte) error {
	contentType := ContentType(name)

	_, err := a.client.UploadBuffer(ctx, a.container, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to container %s: %w", name, a.container, err)
	}

	logrus.Infof("Archived %s (%d bytes) in container %s", name, len(data), a.container)
	return nil
}

// Retrieve downloads an artifact
func (a *BlobArchive) Retrieve(ctx context.Context, name string) ([]byte, error) {
	resp, err := a.client.DownloadStream(ctx, a.container, name, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return data, nil
}

// List returns the sorted artifact names starting with prefix
func (a *BlobArchive) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list container %s: %w", a.container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	sort.Strings(names)

	return names, nil
}

// Delete removes an artifact
func (a *BlobArchive) Delete(ctx context.Context, name string) error {
	_, err := a.client.DeleteBlob(ctx, a.container, name, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}

	logrus.Infof("Removed %s from container %s", name, a.container)
	return nil
}
