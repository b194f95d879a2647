// Package storage provides the object-store accessor for listings and tenant
// documents. Listings are zero-byte marker objects under listings/; documents
// live under documents/<address>/<tenant>/ with their screening metadata
// attached to the object.
package storage

import (
	"context"

	"github.com/yourhome-ai/yourhome/internal/domain"
)

// Store is the object-store surface consumed by the services. Implemented by
// GCS for production and by an in-memory fake in tests.
type Store interface {
	CreateListing(ctx context.Context, address string) error
	Listings(ctx context.Context) ([]string, error)
	Tenants(ctx context.Context, address string) ([]string, error)
	Files(ctx context.Context, address, tenant string, textOnly bool) ([]domain.FileInfo, error)
	Metadata(ctx context.Context, key string) (map[string]string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte, metadata map[string]string) error
	SignedURL(key string) (string, error)
}

const (
	listingPrefix  = "listings/"
	documentPrefix = "documents/"
)

// DocumentKey builds the storage key for one tenant document.
func DocumentKey(address, tenant, filename string) string {
	return documentPrefix + address + "/" + tenant + "/" + filename
}
