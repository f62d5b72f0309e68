package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CardRepo        CardRepositoryFacade
	CardGroupRepo   CardGroupRepositoryFacade
	BankColorRepo   BankColorRepositoryFacade
	ClientRepo      ClientRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	WithdrawalRepo  WithdrawalRepositoryWithTx
	UserRepo        UserRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
