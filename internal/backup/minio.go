// Package backup archives document snapshots to S3-compatible object
// storage for the admin settings/backup panel.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/maktabat-alamal/storefront/internal/models"
)

const keyPrefix = "backups/"

// Service is a thin wrapper around the minio client.
type Service struct {
	client *minio.Client
	bucket string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// NewService creates the object-storage client and ensures the bucket exists.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("backup storage config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &Service{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Backup uploads the document as JSON under a timestamped key and returns
// the key.
func (s *Service) Backup(ctx context.Context, doc *models.Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	key := keyPrefix + time.Now().UTC().Format("20060102T150405") + ".json"
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}
	return key, nil
}

// List returns the keys of all stored backups, oldest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	keys := []string{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: keyPrefix}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Restore downloads and decodes one backup.
func (s *Service) Restore(ctx context.Context, key string) (*models.Document, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	var doc models.Document
	if err := json.NewDecoder(obj).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode backup %s: %w", key, err)
	}
	return &doc, nil
}
