package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"storefront/config"
)

const productImageFolder = "products"

type HostedImage struct {
	URL      string
	PublicID string
}

// CloudinaryUploader hosts product image files before their records are
// created on the backend.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryUploader, error) {
	if !cfg.Enabled() {
		return nil, errors.New("cloudinary credentials not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, logger: logger}, nil
}

func (s *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename string) (HostedImage, error) {
	publicID := fmt.Sprintf("%d_%s", time.Now().UnixNano(), strings.ReplaceAll(filename, " ", "_"))
	publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))

	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         productImageFolder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return HostedImage{}, fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if res == nil {
		return HostedImage{}, errors.New("cloudinary response is nil")
	}

	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	if url == "" {
		return HostedImage{}, errors.New("cloudinary returned no url")
	}
	s.logger.Info("Image uploaded", zap.String("public_id", res.PublicID))
	return HostedImage{URL: url, PublicID: res.PublicID}, nil
}

func (s *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary deletion failed: %s", res.Result)
	}
	return nil
}
