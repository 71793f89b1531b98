// Package storage is the gateway to wherever card images live. Uploads
// happen in the browser and only hand the API an opaque {url, key} pair, so
// the server side of the contract is deletion by key and nothing else.
package storage

import (
	"context"
	"log"
	"os"
)

// FileStore deletes uploaded card images by their opaque storage keys.
type FileStore interface {
	DeleteFiles(ctx context.Context, keys []string) error
}

// FromEnv picks a backend from STORAGE_TYPE: "s3" (bucket from
// S3_BUCKET_NAME), "filesystem" (base dir from LOCAL_STORAGE_PATH), or a
// no-op store when nothing is configured.
func FromEnv() FileStore {
	storageType := os.Getenv("STORAGE_TYPE")

	switch storageType {
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			log.Fatal("storage: S3_BUCKET_NAME must be set for s3 storage type")
		}
		log.Printf("storage: using s3 bucket %s", bucketName)
		return NewS3Store(bucketName)
	case "filesystem":
		basePath := os.Getenv("LOCAL_STORAGE_PATH")
		if basePath == "" {
			basePath = "./uploads"
		}
		log.Printf("storage: using filesystem store at %s", basePath)
		return NewFilesystemStore(basePath)
	default:
		log.Println("storage: STORAGE_TYPE not set, file deletes are a no-op")
		return NoopStore{}
	}
}

// NoopStore accepts every delete without doing anything. Development default.
type NoopStore struct{}

func (NoopStore) DeleteFiles(ctx context.Context, keys []string) error {
	return nil
}
