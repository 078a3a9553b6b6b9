// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"

	"github.com/internetofwater/housing/internal/config"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// A minio server running in a container, for integration tests
type MinioContainer struct {
	// the container itself. used for testcontainer cleanup
	Container testcontainers.Container
	Hostname  string
	APIPort   int
	// client pointed at this container with the default bucket created
	ClientWrapper *MinioClientWrapper
}

// Config that points a MinioClientWrapper at this container
func (c MinioContainer) Config(bucket string) config.MinioConfig {
	return config.MinioConfig{
		Address:   c.Hostname,
		Port:      c.APIPort,
		Accesskey: "minioadmin",
		Secretkey: "minioadmin",
		Bucket:    bucket,
		Prefix:    "images",
	}
}

// NewDefaultMinioContainer starts minio with the default credentials
// and creates bucket
func NewDefaultMinioContainer(ctx context.Context, bucket string) (MinioContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		WaitingFor:   wait.ForHTTP("/minio/health/live").WithPort("9000"),
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd: []string{"server", "/data"},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return MinioContainer{}, fmt.Errorf("generic container: %w", err)
	}

	hostname, err := container.Host(ctx)
	if err != nil {
		return MinioContainer{}, fmt.Errorf("get hostname: %w", err)
	}
	apiPort, err := container.MappedPort(ctx, "9000/tcp")
	if err != nil {
		return MinioContainer{}, fmt.Errorf("get api port: %w", err)
	}

	mc := MinioContainer{Container: container, Hostname: hostname, APIPort: apiPort.Int()}
	mc.ClientWrapper, err = NewMinioClientWrapper(mc.Config(bucket))
	if err != nil {
		return MinioContainer{}, err
	}
	if err := mc.ClientWrapper.MakeDefaultBucket(ctx); err != nil {
		return MinioContainer{}, fmt.Errorf("make bucket: %w", err)
	}
	return mc, nil
}
