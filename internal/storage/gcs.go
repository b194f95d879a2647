package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/yourhome-ai/yourhome/internal/domain"
)

// GCS implements Store against a Google Cloud Storage bucket.
type GCS struct {
	client *gcs.Client
	bucket string
	urlTTL time.Duration
	logger *zap.Logger
}

// NewGCS creates a storage accessor for the given bucket. credentialsFile may
// be empty to use application default credentials.
func NewGCS(ctx context.Context, bucket, credentialsFile string, urlTTL time.Duration, logger *zap.Logger) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if urlTTL <= 0 {
		urlTTL = 15 * time.Minute
	}
	return &GCS{client: client, bucket: bucket, urlTTL: urlTTL, logger: logger}, nil
}

// Close releases the underlying client.
func (s *GCS) Close() error {
	return s.client.Close()
}

// CreateListing writes the zero-byte marker object for a listing.
func (s *GCS) CreateListing(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.ErrInvalidRequest
	}
	w := s.client.Bucket(s.bucket).Object(listingPrefix + address).NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to create listing record for %q: %w", address, err)
	}
	s.logger.Info("listing created", zap.String("address", address))
	return nil
}

// Listings returns all listing addresses, sorted. An empty bucket yields an
// empty slice, not an error.
func (s *GCS) Listings(ctx context.Context) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: listingPrefix})
	addresses := []string{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list listings: %w", err)
		}
		addr := strings.TrimPrefix(attrs.Name, listingPrefix)
		if addr != "" {
			addresses = append(addresses, addr)
		}
	}
	sort.Strings(addresses)
	return addresses, nil
}

// Tenants returns the tenant identifiers that have uploaded documents under
// one listing.
func (s *GCS) Tenants(ctx context.Context, address string) ([]string, error) {
	prefix := documentPrefix + address + "/"
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: prefix, Delimiter: "/"})
	tenants := []string{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list tenants for %q: %w", address, err)
		}
		if attrs.Prefix == "" {
			continue
		}
		tenant := strings.TrimSuffix(strings.TrimPrefix(attrs.Prefix, prefix), "/")
		if tenant != "" {
			tenants = append(tenants, tenant)
		}
	}
	sort.Strings(tenants)
	return tenants, nil
}

// Files returns the document descriptors for one tenant in storage
// enumeration order. textOnly keeps only documents usable as prompt text.
func (s *GCS) Files(ctx context.Context, address, tenant string, textOnly bool) ([]domain.FileInfo, error) {
	prefix := documentPrefix + address + "/" + tenant + "/"
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: prefix})
	files := []domain.FileInfo{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list files for %s/%s: %w", address, tenant, err)
		}
		name := path.Base(attrs.Name)
		if textOnly && !domain.IsTextFile(name) {
			continue
		}
		files = append(files, domain.FileInfo{
			Key:      attrs.Name,
			Name:     name,
			Size:     attrs.Size,
			Metadata: attrs.Metadata,
		})
	}
	return files, nil
}

// Metadata returns the metadata map for one stored object.
func (s *GCS) Metadata(ctx context.Context, key string) (map[string]string, error) {
	attrs, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata for %q: %w", key, err)
	}
	if attrs.Metadata == nil {
		return map[string]string{}, nil
	}
	return attrs.Metadata, nil
}

// Download returns the raw bytes of one stored object.
func (s *GCS) Download(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", key, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to download %q: %w", key, err)
	}
	return data, nil
}

// Upload stores a document with its metadata attached to the object.
func (s *GCS) Upload(ctx context.Context, key string, data []byte, metadata map[string]string) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	w.Metadata = metadata
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to upload %q: %w", key, err)
	}
	s.logger.Info("document uploaded", zap.String("key", key), zap.Int("size", len(data)))
	return nil
}

// SignedURL returns a time-limited GET URL for one stored object.
func (s *GCS) SignedURL(key string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(s.urlTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %q: %w", key, err)
	}
	return url, nil
}
