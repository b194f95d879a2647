package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/storage"
	"github.com/yourhome-ai/yourhome/internal/textenc"
)

// PortalService handles the management-portal workflows over the object
// store: listings, tenants, document menus, uploads, and the viewer.
type PortalService struct {
	store  storage.Store
	logger *zap.Logger
}

// NewPortalService creates a new portal service
func NewPortalService(store storage.Store, logger *zap.Logger) *PortalService {
	return &PortalService{store: store, logger: logger}
}

// CreateListing creates a listing keyed by its address.
func (s *PortalService) CreateListing(ctx context.Context, address string) error {
	return s.store.CreateListing(ctx, address)
}

// Listings returns all listing addresses.
func (s *PortalService) Listings(ctx context.Context) ([]string, error) {
	return s.store.Listings(ctx)
}

// Tenants returns the tenant identifiers for one listing.
func (s *PortalService) Tenants(ctx context.Context, address string) ([]string, error) {
	return s.store.Tenants(ctx, address)
}

// Documents returns the file descriptors for one tenant.
func (s *PortalService) Documents(ctx context.Context, address, tenant string, textOnly bool) ([]domain.FileInfo, error) {
	return s.store.Files(ctx, address, tenant, textOnly)
}

// Categories returns the distinct document categories for one tenant.
func (s *PortalService) Categories(ctx context.Context, address, tenant string) ([]string, error) {
	files, err := s.store.Files(ctx, address, tenant, false)
	if err != nil {
		return nil, err
	}
	return domain.Categories(files), nil
}

// UploadDocument stores a tenant document with its screening metadata.
func (s *PortalService) UploadDocument(ctx context.Context, address, tenant, filename string, data []byte, metadata map[string]string) (domain.FileInfo, error) {
	if strings.TrimSpace(filename) == "" || strings.Contains(filename, "/") {
		return domain.FileInfo{}, domain.ErrInvalidRequest
	}
	key := storage.DocumentKey(address, tenant, filename)
	if err := s.store.Upload(ctx, key, data, metadata); err != nil {
		return domain.FileInfo{}, err
	}
	return domain.FileInfo{
		Key:      key,
		Name:     filename,
		Size:     int64(len(data)),
		Metadata: metadata,
	}, nil
}

// Metadata returns the metadata map for one document key.
func (s *PortalService) Metadata(ctx context.Context, key string) (map[string]string, error) {
	return s.store.Metadata(ctx, key)
}

// SignedURL returns a time-limited download URL for one document.
func (s *PortalService) SignedURL(key string) (string, error) {
	return s.store.SignedURL(key)
}

// ViewDocument resolves how a document should be rendered. Text files are
// returned inline after encoding detection; binary formats get a signed URL
// the client can fetch directly.
func (s *PortalService) ViewDocument(ctx context.Context, key string) (*domain.DocumentView, error) {
	view := &domain.DocumentView{Key: key, Kind: domain.FileKind(key)}

	if view.Kind == domain.KindText {
		data, err := s.store.Download(ctx, key)
		if err != nil {
			return nil, err
		}
		view.Encoding = textenc.DetectBytes(data)
		view.Content = textenc.DecodeText(data)
		return view, nil
	}

	// Confirm the object exists before handing out a URL.
	if _, err := s.store.Metadata(ctx, key); err != nil {
		return nil, err
	}
	url, err := s.store.SignedURL(key)
	if err != nil {
		return nil, err
	}
	view.URL = url
	return view, nil
}
