package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
)

const (
	maxUploadBytes = 20 * 1024 * 1024

	growImagePrefix = "growImages"
	publicURLBase   = "https://storage.googleapis.com"
)

var extensionByContentType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type gcsClient interface {
	UploadObject(ctx context.Context, bucket, object, contentType string, data []byte) error
	DeleteObject(ctx context.Context, bucket, object string) error
}

// UploadInput models an image payload to be attached to a grow.
type UploadInput struct {
	Data        []byte
	ContentType string
}

// StoredImage is the blob-store location of an uploaded image.
type StoredImage struct {
	URL string
	Key string
}

// Store persists grow images in the blob store under growImages/{ownerId}/.
type Store interface {
	Upload(ctx context.Context, ownerID uuid.UUID, input UploadInput) (*StoredImage, error)
	Delete(ctx context.Context, key string) error
}

type store struct {
	gcs    gcsClient
	bucket string
}

// NewStore constructs an image store backed by the provided GCS client.
func NewStore(gcs gcsClient, bucket string) (Store, error) {
	if gcs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gcs client required")
	}
	if bucket == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gcs bucket required")
	}
	return &store{gcs: gcs, bucket: bucket}, nil
}

func (s *store) Upload(ctx context.Context, ownerID uuid.UUID, input UploadInput) (*StoredImage, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if len(input.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image payload required")
	}
	if len(input.Data) > maxUploadBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image exceeds upload limit")
	}
	ext, ok := extensionByContentType[input.ContentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported content type %q", input.ContentType))
	}

	key := fmt.Sprintf("%s/%s/%s.%s", growImagePrefix, ownerID, uuid.NewString(), ext)
	if err := s.gcs.UploadObject(ctx, s.bucket, key, input.ContentType, input.Data); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload grow image")
	}

	return &StoredImage{
		URL: fmt.Sprintf("%s/%s/%s", publicURLBase, s.bucket, key),
		Key: key,
	}, nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "object key required")
	}
	if err := s.gcs.DeleteObject(ctx, s.bucket, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete grow image")
	}
	return nil
}
