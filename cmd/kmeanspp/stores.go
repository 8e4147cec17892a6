package main

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/kmeanspp/blobstore"
	minioblob "github.com/hupe1980/kmeanspp/blobstore/minio"
	s3blob "github.com/hupe1980/kmeanspp/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// location is a parsed input or output address.
type location struct {
	scheme string // "", "s3" or "minio"
	bucket string
	name   string
}

func parseLocation(uri string) (location, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return location{name: uri}, nil
	}

	switch scheme {
	case "s3", "minio":
	case "file":
		return location{name: rest}, nil
	default:
		return location{}, fmt.Errorf("unsupported scheme %q in %s", scheme, uri)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return location{}, fmt.Errorf("%s: expected %s://bucket/key", uri, scheme)
	}
	return location{scheme: scheme, bucket: bucket, name: key}, nil
}

// resolver builds blob stores for locations, creating each client once.
type resolver struct {
	getenv func(string) string

	awsOnce sync.Once
	awsCfg  aws.Config
	awsErr  error

	minioOnce   sync.Once
	minioClient *minio.Client
	minioErr    error

	local *blobstore.LocalStore
}

func newResolver(getenv func(string) string) *resolver {
	return &resolver{
		getenv: getenv,
		local:  blobstore.NewLocalStore(""),
	}
}

func (r *resolver) aws(ctx context.Context) (aws.Config, error) {
	r.awsOnce.Do(func() {
		r.awsCfg, r.awsErr = config.LoadDefaultConfig(ctx)
	})
	return r.awsCfg, r.awsErr
}

func (r *resolver) minio() (*minio.Client, error) {
	r.minioOnce.Do(func() {
		endpoint := r.getenv("MINIO_ENDPOINT")
		if endpoint == "" {
			r.minioErr = errors.New("MINIO_ENDPOINT is not set")
			return
		}
		r.minioClient, r.minioErr = minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(r.getenv("MINIO_ACCESS_KEY"), r.getenv("MINIO_SECRET_KEY"), ""),
			Secure: r.getenv("MINIO_SECURE") == "true",
		})
	})
	return r.minioClient, r.minioErr
}

// store returns the blob store holding loc.
func (r *resolver) store(ctx context.Context, loc location) (blobstore.BlobStore, error) {
	switch loc.scheme {
	case "s3":
		cfg, err := r.aws(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return s3blob.NewStore(awss3.NewFromConfig(cfg), loc.bucket, ""), nil
	case "minio":
		client, err := r.minio()
		if err != nil {
			return nil, err
		}
		return minioblob.NewStore(client, loc.bucket, ""), nil
	default:
		return r.local, nil
	}
}

// outputStore is like store but makes sure MinIO buckets exist.
func (r *resolver) outputStore(ctx context.Context, loc location) (blobstore.BlobStore, error) {
	s, err := r.store(ctx, loc)
	if err != nil {
		return nil, err
	}
	if ms, ok := s.(*minioblob.Store); ok {
		if err := ms.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", loc.bucket, err)
		}
	}
	return s, nil
}

// ledger returns a run ledger for an s3 output location.
func (r *resolver) ledger(ctx context.Context, loc location, table string) (*s3blob.DDBLedger, error) {
	if loc.scheme != "s3" {
		return nil, errors.New("the run ledger needs an s3:// output")
	}
	cfg, err := r.aws(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	store := s3blob.NewStore(awss3.NewFromConfig(cfg), loc.bucket, "")
	baseURI := "s3://" + path.Join(loc.bucket, path.Dir(loc.name))
	return s3blob.NewDDBLedger(store, dynamodb.NewFromConfig(cfg), table, baseURI), nil
}
