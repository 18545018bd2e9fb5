package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/usermgmt/internal/server/config"
)

func newStorageForTest() *StorageService {
	return NewStorageService(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "avatars",
	})
}

func stubAWSSeams(t *testing.T) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origPut := putObject
	origNewPre := newS3PresignClient
	origPre := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		putObject = origPut
		newS3PresignClient = origNewPre
		presignGetObject = origPre
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestRandomStorageKey(t *testing.T) {
	k1 := RandomStorageKey()
	k2 := RandomStorageKey()

	if !strings.HasPrefix(k1, "avatars/") {
		t.Fatalf("unexpected key prefix: %q", k1)
	}
	if k1 == k2 {
		t.Fatalf("keys must be unique: %q", k1)
	}
}

func TestUpload_ReturnsKey(t *testing.T) {
	stubAWSSeams(t)
	svc := newStorageForTest()

	var gotBucket, gotKey string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		return &s3.PutObjectOutput{}, nil
	}

	key, err := svc.Upload(context.Background(), strings.NewReader("file-bytes"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if key == "" || key != gotKey {
		t.Fatalf("returned key must match stored key: %q vs %q", key, gotKey)
	}
	if gotBucket != "avatars" {
		t.Fatalf("bucket mismatch: %q", gotBucket)
	}
}

func TestUpload_PutError(t *testing.T) {
	stubAWSSeams(t)
	svc := newStorageForTest()

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("put-fail")
	}

	if _, err := svc.Upload(context.Background(), strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPresignGetURL(t *testing.T) {
	stubAWSSeams(t)
	svc := newStorageForTest()

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Key != "avatars/k" {
			t.Fatalf("key mismatch: %q", *in.Key)
		}
		return &v4.PresignedHTTPRequest{URL: "http://signed/avatars/k"}, nil
	}

	url, err := svc.PresignGetURL(context.Background(), "avatars/k")
	if err != nil {
		t.Fatalf("PresignGetURL error: %v", err)
	}
	if url != "http://signed/avatars/k" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestStorage_ConfigLoadError(t *testing.T) {
	stubAWSSeams(t)
	svc := newStorageForTest()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	if _, err := svc.Upload(context.Background(), strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := svc.PresignGetURL(context.Background(), "k"); err == nil {
		t.Fatalf("expected error")
	}
}
