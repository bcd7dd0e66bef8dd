package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/DDismyname28/home-portal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService is the blob store boundary: the rest of the system only
// ever holds the opaque URLs this interface returns, never raw bytes.
type StorageService interface {
	// Upload stores a file (an io.Reader, file path or similar) and
	// returns its stable retrievable URL.
	Upload(ctx context.Context, file interface{}, filename string) (string, error)
	// Delete removes the blob a previously returned URL points at.
	Delete(ctx context.Context, url string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage initializes the Cloudinary client from AppConfig.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: "home-portal/requests"}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file interface{}, filename string) (string, error) {
	publicID := strings.TrimSuffix(filename, path.Ext(filename))
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload of %s failed: %w", filename, err)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, url string) error {
	publicID := s.publicIDFromURL(url)
	if publicID == "" {
		return fmt.Errorf("storage: cannot derive public id from url %s", url)
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("storage: delete of %s failed: %w", url, err)
	}
	return nil
}

// publicIDFromURL recovers the Cloudinary public id from a delivery URL.
// Delivery URLs look like .../upload/v123/<folder>/<name>.<ext>.
func (s *CloudinaryStorage) publicIDFromURL(url string) string {
	idx := strings.Index(url, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := url[idx+len("/upload/"):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) == 2 && strings.HasPrefix(parts[0], "v") {
		rest = parts[1]
	}
	return strings.TrimSuffix(rest, path.Ext(rest))
}
