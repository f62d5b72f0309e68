package services

import (
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The reference timezone comes from config and is shared by every service that
// reasons about calendar days.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	loc := cfg.Timezone

	container := &portssvc.ServiceContainer{}

	// Card group service first since the card service resolves groups through it.
	container.CardGroup = NewCardGroupServiceImpl(repos.CardGroupRepo, repos.CardRepo)

	container.Card = NewCardServiceImpl(
		repos.CardRepo,
		repos.BankColorRepo,
		repos.TransactionRepo,
		repos.WithdrawalRepo,
		container.CardGroup,
	)
	container.Client = NewClientServiceImpl(repos.ClientRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionServiceImpl(repos.TransactionRepo, repos.CardRepo, repos.ClientRepo, loc)

	// Balance engine and the two builders on top of it.
	container.Balance = NewBalanceServiceImpl(repos.CardRepo, repos.TransactionRepo, repos.WithdrawalRepo, loc)
	container.Timeline = NewTimelineServiceImpl(repos.CardRepo, repos.ClientRepo, repos.TransactionRepo, repos.WithdrawalRepo, loc)
	container.Sheet = NewSheetServiceImpl(repos.CardRepo, repos.BankColorRepo, repos.TransactionRepo, repos.WithdrawalRepo, loc)
	container.Withdrawal = NewWithdrawalServiceImpl(repos.CardRepo, repos.WithdrawalRepo, loc)

	container.Reporting = NewReportingServiceImpl(repos.CardRepo, repos.TransactionRepo, repos.WithdrawalRepo, repos.ReportingRepo, loc)

	container.User = NewUserServiceImpl(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)

	return container
}
