package domain

import "strings"

// TenantDisplayName converts a stored tenant identifier to its display form.
// Tenant folders use underscores in place of spaces.
func TenantDisplayName(tenant string) string {
	return strings.ReplaceAll(tenant, "_", " ")
}

// TenantKeyName converts a display name back to the stored identifier.
func TenantKeyName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
