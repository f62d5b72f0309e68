package pgsql

import (
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	cardRepo := newPgxCardRepository(dbPool)
	cardGroupRepo := newPgxCardGroupRepository(dbPool)
	bankColorRepo := newPgxBankColorRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	withdrawalRepo := newPgxWithdrawalRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CardRepo:        cardRepo,
		CardGroupRepo:   cardGroupRepo,
		BankColorRepo:   bankColorRepo,
		ClientRepo:      clientRepo,
		TransactionRepo: transactionRepo,
		WithdrawalRepo:  withdrawalRepo,
		UserRepo:        userRepo,
		ReportingRepo:   reportingRepo,
	}
}
