package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"drinkmate_backend/internal/database"

	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
)

// UploadImage stores an uploaded image under a folder of the main bucket
// ("products", "blog", "recipes") and returns its public URL.
func UploadImage(folder string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO not initialized")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := path.Join(folder, gocql.TimeUUID().String()+path.Ext(file.Filename))

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName), nil
}

// DeleteImage removes a previously uploaded object by its object name.
func DeleteImage(objectName string) error {
	if database.MinIO == nil {
		return fmt.Errorf("MinIO not initialized")
	}
	bucket := os.Getenv("MINIO_BUCKET")
	return database.MinIO.RemoveObject(context.Background(), bucket, objectName, minio.RemoveObjectOptions{})
}
