package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"happyhour-console/internal/infra"
	"happyhour-console/internal/pkg/config"
)

const (
	menuPrefix    = "happyHourMenu/"
	stagingPrefix = menuPrefix + "_staging/"
)

// CanonicalMenuKey is the id-keyed object path every new upload uses.
func CanonicalMenuKey(entryID uuid.UUID) string {
	return menuPrefix + entryID.String() + ".pdf"
}

// LegacyMenuKey is the older bar-name-scoped path. Reads fall back to
// it; nothing writes it anymore.
func LegacyMenuKey(barName string, entryID uuid.UUID) string {
	return menuPrefix + barName + "/" + entryID.String() + ".pdf"
}

func stagingKey(key string) string {
	return stagingPrefix + key
}

// MenuObjectStore keeps menu PDFs in a bucket. It backs both the
// command side (staging, per-entry uploads) and the read side
// (downloads, presigned URLs).
type MenuObjectStore struct {
	client *minio.Client
	bucket string
}

func NewMenuObjectStore(cfg config.StorageConfig) (*MenuObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create storage client", err, infra.KindUnavailable)
	}

	store := &MenuObjectStore{client: client, bucket: cfg.Bucket}
	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MenuObjectStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return infra.WrapRepoErr("failed to check bucket", err, infra.KindUnavailable)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return infra.WrapRepoErr("failed to create bucket", err, infra.KindUnavailable)
	}
	return nil
}

func (s *MenuObjectStore) UploadEntryMenu(ctx context.Context, entryID uuid.UUID, data []byte) error {
	return s.put(ctx, CanonicalMenuKey(entryID), data)
}

func (s *MenuObjectStore) UploadStaging(ctx context.Context, key string, data []byte) error {
	return s.put(ctx, stagingKey(key), data)
}

func (s *MenuObjectStore) OpenStaging(ctx context.Context, key string) ([]byte, error) {
	return s.get(ctx, stagingKey(key))
}

func (s *MenuObjectStore) DeleteStaging(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, stagingKey(key), minio.RemoveObjectOptions{})
	if err != nil {
		return infra.WrapRepoErr("failed to delete staged object", err)
	}
	return nil
}

// OpenEntryMenu reads the id-keyed object, falling back to the legacy
// name-scoped path for records written before the convention changed.
func (s *MenuObjectStore) OpenEntryMenu(ctx context.Context, entryID uuid.UUID, barName string) ([]byte, error) {
	data, err := s.get(ctx, CanonicalMenuKey(entryID))
	if err == nil {
		return data, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) || barName == "" {
		return nil, err
	}
	return s.get(ctx, LegacyMenuKey(barName, entryID))
}

func (s *MenuObjectStore) EntryMenuURL(ctx context.Context, entryID uuid.UUID, barName string, expiry time.Duration) (string, error) {
	key := CanonicalMenuKey(entryID)
	exists, err := s.exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		if barName == "" {
			return "", infra.WrapRepoErr("menu object not found", nil, infra.KindNotFound)
		}
		key = LegacyMenuKey(barName, entryID)
		exists, err = s.exists(ctx, key)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", infra.WrapRepoErr("menu object not found", nil, infra.KindNotFound)
		}
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", infra.WrapRepoErr("failed to presign menu URL", err)
	}
	return u.String(), nil
}

func (s *MenuObjectStore) put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return infra.WrapRepoErr("failed to upload object", err)
	}
	return nil
}

func (s *MenuObjectStore) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to open object", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, infra.WrapRepoErr("object not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read object", err)
	}
	return data, nil
}

func (s *MenuObjectStore) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to stat object", err)
	}
	return true, nil
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
	}
	return false
}
