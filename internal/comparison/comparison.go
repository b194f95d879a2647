// Package comparison builds the tenant comparison view: scalar metrics pulled
// from document metadata plus the derived rent-to-income ratio.
package comparison

import (
	"context"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/storage"
)

// Service assembles comparison rows from stored document metadata.
type Service struct {
	store       storage.Store
	monthlyRent float64
	logger      *zap.Logger
}

// NewService creates a comparison service. monthlyRent is the listing rent
// used for the rent-to-income ratio.
func NewService(store storage.Store, monthlyRent float64, logger *zap.Logger) *Service {
	return &Service{store: store, monthlyRent: monthlyRent, logger: logger}
}

// Compare builds one row per requested tenant. Metrics come from the metadata
// of the tenant's categorized documents; documents with unrecognized types
// contribute nothing. No language-model calls are made here.
func (s *Service) Compare(ctx context.Context, address string, tenants []string) ([]domain.ComparisonRow, error) {
	rows := make([]domain.ComparisonRow, 0, len(tenants))
	for _, tenant := range tenants {
		files, err := s.store.Files(ctx, address, tenant, false)
		if err != nil {
			return nil, err
		}

		row := domain.ComparisonRow{Tenant: domain.TenantDisplayName(tenant)}
		for _, f := range files {
			switch f.DocType() {
			case domain.DocTypeCreditScore:
				row.CreditScore = f.Metadata[domain.MetadataKeyCreditScore]
			case domain.DocTypeIncomeVerification:
				row.MonthlyIncome = f.Metadata[domain.MetadataKeyMonthlyIncome]
			case domain.DocTypeReferences:
				row.References = f.Metadata[domain.MetadataKeyReferences]
			}
		}
		row.RentToIncome = RentToIncome(s.monthlyRent, row.MonthlyIncome)
		rows = append(rows, row)
	}
	return rows, nil
}

// RentToIncome computes rent/income as a percentage rounded to 2 decimals.
// The ratio is defined only when income parses to a positive number; for
// missing, non-numeric, zero, or negative income it returns nil, never zero.
func RentToIncome(rent float64, income string) *float64 {
	v, err := strconv.ParseFloat(income, 64)
	if err != nil || v <= 0 {
		return nil
	}
	ratio := math.Round(rent/v*100*100) / 100
	return &ratio
}
