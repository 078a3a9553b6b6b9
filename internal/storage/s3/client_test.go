// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/internetofwater/housing/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestArtifactKey(t *testing.T) {
	client, err := NewMinioClientWrapper(config.MinioConfig{Address: "127.0.0.1", Port: 9000, Prefix: "images"})
	require.NoError(t, err)
	require.Equal(t, "images/correlation_matrix.png", client.ArtifactKey("/tmp/out/correlation_matrix.png"))

	client.Prefix = ""
	require.Equal(t, "correlation.svg", client.ArtifactKey("visuals/correlation.svg"))
}

// Wrapper struct to store a handle to the container for all tests
type S3ClientSuite struct {
	suite.Suite
	minioContainer MinioContainer
}

func (suite *S3ClientSuite) SetupSuite() {
	minioContainer, err := NewDefaultMinioContainer(context.Background(), "housing")
	suite.Require().NoError(err)
	suite.minioContainer = minioContainer
}

func (suite *S3ClientSuite) TearDownSuite() {
	suite.Require().NoError(suite.minioContainer.Container.Terminate(context.Background()))
}

func (suite *S3ClientSuite) TestUploadFile() {
	t := suite.T()
	ctx := context.Background()
	client := suite.minioContainer.ClientWrapper

	local := filepath.Join(t.TempDir(), "correlation_matrix.png")
	require.NoError(t, os.WriteFile(local, []byte("not really a png"), 0o644))

	key := client.ArtifactKey(local)
	require.NoError(t, client.UploadFile(ctx, key, local))

	objs, err := client.ObjectList(ctx, "images/")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	require.Equal(t, key, objs[0].Key)

	obj, err := client.Client.GetObject(ctx, client.DefaultBucket, key, minio.GetObjectOptions{})
	require.NoError(t, err)
	defer func() { _ = obj.Close() }()
	body, err := io.ReadAll(obj)
	require.NoError(t, err)
	require.Equal(t, "not really a png", string(body))

	info, err := obj.Stat()
	require.NoError(t, err)
	require.Equal(t, "image/png", info.ContentType)

	require.NoError(t, client.Remove(ctx, key))
	objs, err = client.ObjectList(ctx, "images/")
	require.NoError(t, err)
	require.Empty(t, objs)
}

func (suite *S3ClientSuite) TestUploadMissingFile() {
	err := suite.minioContainer.ClientWrapper.UploadFile(context.Background(), "images/missing.png", filepath.Join(suite.T().TempDir(), "missing.png"))
	suite.Require().ErrorIs(err, os.ErrNotExist)
}

func TestS3ClientSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping minio container tests in short mode")
	}
	suite.Run(t, new(S3ClientSuite))
}
