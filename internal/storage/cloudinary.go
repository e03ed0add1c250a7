package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
)

const uploadTimeout = 10 * time.Second

// Uploader stores a binary asset and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to init cloudinary client: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: "products"}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:      u.folder,
		UseFilename: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("storage: upload rejected: %s", resp.Error.Message)
	}

	log.Debug().Str("filename", filename).Str("url", resp.SecureURL).Msg("storage: image uploaded")
	return resp.SecureURL, nil
}
