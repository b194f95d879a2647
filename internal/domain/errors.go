package domain

import "errors"

var (
	// ErrNotFound indicates a missing listing, tenant, document, or metadata key
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request input
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthenticated indicates no valid login session
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountExists indicates a duplicate registration
	ErrAccountExists = errors.New("account already exists")
	// ErrSubscriptionRequired indicates the gate blocked a premium action
	ErrSubscriptionRequired = errors.New("active subscription required")
	// ErrNoListings indicates no listings exist yet
	ErrNoListings = errors.New("no listings available")
	// ErrNoTenants indicates a listing has no tenants
	ErrNoTenants = errors.New("no tenants available for this listing")
	// ErrNoDocuments indicates no evaluable documents for a tenant
	ErrNoDocuments = errors.New("no evaluable documents")
)
