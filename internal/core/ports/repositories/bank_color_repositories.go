package repositories

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// BankColorReader defines read operations for bank color data
type BankColorReader interface {
	// ListBankColors retrieves all assigned bank colors ordered by bank name.
	ListBankColors(ctx context.Context) ([]domain.BankColor, error)
}

// BankColorWriter defines write operations for bank color data
type BankColorWriter interface {
	// UpsertBankColor creates or replaces the color assigned to a bank.
	UpsertBankColor(ctx context.Context, color domain.BankColor) error
}

// BankColorRepositoryFacade combines all bank-color repository interfaces
type BankColorRepositoryFacade interface {
	BankColorReader
	BankColorWriter
}
