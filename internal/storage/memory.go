package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/yourhome-ai/yourhome/internal/domain"
)

// Memory is an in-memory Store used for local development and tests. It
// mirrors the GCS key layout exactly.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data     []byte
	metadata map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memObject)}
}

// CreateListing writes the zero-byte marker object for a listing.
func (s *Memory) CreateListing(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.ErrInvalidRequest
	}
	s.mu.Lock()
	s.objects[listingPrefix+address] = memObject{}
	s.mu.Unlock()
	return nil
}

// Listings returns all listing addresses, sorted.
func (s *Memory) Listings(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	addresses := []string{}
	for key := range s.objects {
		if strings.HasPrefix(key, listingPrefix) {
			addresses = append(addresses, strings.TrimPrefix(key, listingPrefix))
		}
	}
	sort.Strings(addresses)
	return addresses, nil
}

// Tenants returns the tenant identifiers under one listing.
func (s *Memory) Tenants(ctx context.Context, address string) ([]string, error) {
	prefix := documentPrefix + address + "/"
	seen := make(map[string]bool)
	s.mu.RLock()
	for key := range s.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if i := strings.Index(rest, "/"); i > 0 {
			seen[rest[:i]] = true
		}
	}
	s.mu.RUnlock()

	tenants := []string{}
	for t := range seen {
		tenants = append(tenants, t)
	}
	sort.Strings(tenants)
	return tenants, nil
}

// Files returns the document descriptors for one tenant in key order.
func (s *Memory) Files(ctx context.Context, address, tenant string, textOnly bool) ([]domain.FileInfo, error) {
	prefix := documentPrefix + address + "/" + tenant + "/"
	s.mu.RLock()
	keys := []string{}
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	s.mu.RUnlock()
	sort.Strings(keys)

	files := []domain.FileInfo{}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, key := range keys {
		name := path.Base(key)
		if textOnly && !domain.IsTextFile(name) {
			continue
		}
		obj := s.objects[key]
		files = append(files, domain.FileInfo{
			Key:      key,
			Name:     name,
			Size:     int64(len(obj.data)),
			Metadata: obj.metadata,
		})
	}
	return files, nil
}

// Metadata returns the metadata map for one stored object.
func (s *Memory) Metadata(ctx context.Context, key string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if obj.metadata == nil {
		return map[string]string{}, nil
	}
	return obj.metadata, nil
}

// Download returns the raw bytes of one stored object.
func (s *Memory) Download(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), obj.data...), nil
}

// Upload stores a document with its metadata.
func (s *Memory) Upload(ctx context.Context, key string, data []byte, metadata map[string]string) error {
	s.mu.Lock()
	s.objects[key] = memObject{data: append([]byte(nil), data...), metadata: metadata}
	s.mu.Unlock()
	return nil
}

// SignedURL returns a stable placeholder URL for one stored object.
func (s *Memory) SignedURL(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", domain.ErrNotFound
	}
	return fmt.Sprintf("memory://signed/%s", key), nil
}
