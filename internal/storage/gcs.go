// Package storage relays delivery proof photos to a Google Cloud
// Storage bucket and produces a JPEG thumbnail alongside each
// original.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/constants"
)

var photoContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// PhotoStore is what DeliveryService depends on; the GCS
// implementation below is the only production one.
type PhotoStore interface {
	// SavePhoto uploads the photo and its thumbnail, returning the
	// public URLs of both.
	SavePhoto(ctx context.Context, contentType string, data []byte) (photoURL, thumbURL string, err error)
}

type gcsPhotoStore struct {
	client *storage.Client
	bucket string
}

// NewGCSPhotoStore prefers Application Default Credentials; set
// GCS_CREDENTIALS_JSON to provide explicit JSON locally.
func NewGCSPhotoStore(ctx context.Context, bucket string) (PhotoStore, error) {
	var (
		client *storage.Client
		err    error
	)
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &gcsPhotoStore{client: client, bucket: bucket}, nil
}

func (s *gcsPhotoStore) SavePhoto(ctx context.Context, contentType string, data []byte) (string, string, error) {
	ext, ok := photoContentTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("unsupported photo content type %q", contentType)
	}
	if int64(len(data)) > constants.MaxPhotoBytes {
		return "", "", fmt.Errorf("photo exceeds %d byte limit", constants.MaxPhotoBytes)
	}

	key := uuid.NewString()
	objectName := "deliveries/" + key + ext
	if err := s.write(ctx, objectName, contentType, data); err != nil {
		return "", "", err
	}

	thumbName := "deliveries/" + key + "_thumb.jpg"
	thumb, err := makeThumbnail(data)
	if err != nil {
		return "", "", err
	}
	if err := s.write(ctx, thumbName, "image/jpeg", thumb); err != nil {
		return "", "", err
	}

	return s.publicURL(objectName), s.publicURL(thumbName), nil
}

func (s *gcsPhotoStore) write(ctx context.Context, objectName, contentType string, data []byte) error {
	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		return err
	}
	return wc.Close()
}

func (s *gcsPhotoStore) publicURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName)
}

func makeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumbnail := imaging.Resize(img, constants.ThumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
