package cache

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// BlobStore stores values as objects in a gocloud.dev bucket.
type BlobStore struct {
	bucket *blob.Bucket
	prefix string
}

var _ Store = (*BlobStore)(nil)

// NewBlobStore opens bucketURL (file:///path, mem://, ...). Object keys are
// prefix + key + ".json".
func NewBlobStore(ctx context.Context, bucketURL, prefix string) (*BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("cache: open bucket %s: %w", bucketURL, err)
	}
	return &BlobStore{bucket: bucket, prefix: prefix}, nil
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, s.keyFor(key))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	return s.bucket.WriteAll(ctx, s.keyFor(key), value, &blob.WriterOptions{
		ContentType: "application/json",
	})
}

func (s *BlobStore) Close() error {
	return s.bucket.Close()
}

func (s *BlobStore) keyFor(key string) string {
	return s.prefix + key + ".json"
}
