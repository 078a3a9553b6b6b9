// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/internetofwater/housing/internal/config"
	"github.com/internetofwater/housing/internal/opentelemetry"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// Wrapper to allow us to extend the minio client struct with new methods
type MinioClientWrapper struct {
	// Base client for accessing minio
	Client *minio.Client
	// Bucket every artifact is stored in
	DefaultBucket string
	// Prefix prepended to every uploaded artifact
	Prefix string
}

type S3Prefix = string

// NewMinioClientWrapper builds a client from the minio config.
// No request is made until the first operation
func NewMinioClientWrapper(mcfg config.MinioConfig) (*MinioClientWrapper, error) {
	endpoint := mcfg.Address
	if mcfg.Port != 0 {
		endpoint = fmt.Sprintf("%s:%d", mcfg.Address, mcfg.Port)
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(mcfg.Accesskey, mcfg.Secretkey, ""),
		Secure: mcfg.SSL,
	}
	if mcfg.Region == "" {
		log.Debug("Minio client created with no region set")
	} else {
		opts.Region = mcfg.Region
	}

	client, err := minio.New(endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", endpoint, err)
	}
	return &MinioClientWrapper{Client: client, DefaultBucket: mcfg.Bucket, Prefix: mcfg.Prefix}, nil
}

// Create the default bucket if it does not exist yet
func (m *MinioClientWrapper) MakeDefaultBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.DefaultBucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.Client.MakeBucket(ctx, m.DefaultBucket, minio.MakeBucketOptions{})
}

// ArtifactKey is the object name a local file is stored under
func (m *MinioClientWrapper) ArtifactKey(localFileName string) S3Prefix {
	return path.Join(m.Prefix, filepath.Base(localFileName))
}

// UploadFile stores a local file under key, setting the content
// type from the file extension when it is known
func (m *MinioClientWrapper) UploadFile(ctx context.Context, key S3Prefix, localFileName string) error {
	span, ctx := opentelemetry.SubSpanFromCtx(ctx)
	defer span.End()

	file, err := os.Open(localFileName)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	opts := minio.PutObjectOptions{ContentType: mime.TypeByExtension(filepath.Ext(localFileName))}
	info, err := m.Client.PutObject(ctx, m.DefaultBucket, key, file, stat.Size(), opts)
	if err != nil {
		return fmt.Errorf("failed to upload %s to %s/%s: %w", localFileName, m.DefaultBucket, key, err)
	}
	log.Infof("Uploaded %s to %s/%s (%d bytes)", localFileName, m.DefaultBucket, key, info.Size)
	return nil
}

// Return a list of objects matching the specified prefix
func (m *MinioClientWrapper) ObjectList(ctx context.Context, prefix S3Prefix) ([]minio.ObjectInfo, error) {
	objects := []minio.ObjectInfo{}
	for object := range m.Client.ListObjects(ctx, m.DefaultBucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return objects, object.Err
		}
		objects = append(objects, object)
	}
	return objects, nil
}

// Remove an object from the store
func (m *MinioClientWrapper) Remove(ctx context.Context, key S3Prefix) error {
	return m.Client.RemoveObject(ctx, m.DefaultBucket, key, minio.RemoveObjectOptions{GovernanceBypass: true})
}
