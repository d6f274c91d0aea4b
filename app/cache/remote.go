package cache

import (
	"bytes"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"
)

// RemoteStore mirrors the snapshot to a blob store. Implementations are
// best-effort: the local file stays authoritative when the remote is down.
type RemoteStore interface {
	Upload(object string, data []byte) error
	Update(object string, data []byte) error
	Download(object string) ([]byte, error)
}

// StorageStore is the Supabase Storage backed RemoteStore.
type StorageStore struct {
	client *storage_go.Client
	bucket string
}

func NewStorageStore(url, key, bucket string) *StorageStore {
	return &StorageStore{
		client: storage_go.NewClient(url, key, nil),
		bucket: bucket,
	}
}

func (s *StorageStore) Upload(object string, data []byte) error {
	contentType := "application/json"
	_, err := s.client.UploadFile(s.bucket, object, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", object, err)
	}
	return nil
}

func (s *StorageStore) Update(object string, data []byte) error {
	contentType := "application/json"
	_, err := s.client.UpdateFile(s.bucket, object, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("update %s: %w", object, err)
	}
	return nil
}

func (s *StorageStore) Download(object string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, object)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", object, err)
	}
	return data, nil
}
