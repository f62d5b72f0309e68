package services_test

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// Shared mock repositories for the service test suites in this package.

// stubTx satisfies pgx.Tx by embedding the interface. The services only pass
// the handle through to mocked repository methods; none of its own methods
// are ever invoked in these tests.
type stubTx struct {
	pgx.Tx
}

// --- Mock CardRepository ---

type MockCardRepository struct {
	mock.Mock
}

var _ portsrepo.CardRepositoryFacade = (*MockCardRepository)(nil)

func (m *MockCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) FindCardByIdentity(ctx context.Context, name, bank, cardNumber string) (*domain.Card, error) {
	args := m.Called(ctx, name, bank, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) ListCards(ctx context.Context, status *domain.CardStatus, bank *string) ([]domain.Card, error) {
	args := m.Called(ctx, status, bank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCardRepository) ListBanks(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCardRepository) CountCardsInGroup(ctx context.Context, groupID string) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateCard(ctx context.Context, card domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteCardInTx(ctx context.Context, tx pgx.Tx, cardID string) error {
	args := m.Called(ctx, tx, cardID)
	return args.Error(0)
}

func (m *MockCardRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCardRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCardRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CardGroupRepository ---

type MockCardGroupRepository struct {
	mock.Mock
}

var _ portsrepo.CardGroupRepositoryFacade = (*MockCardGroupRepository)(nil)

func (m *MockCardGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.CardGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardGroup), args.Error(1)
}

func (m *MockCardGroupRepository) FindGroupByName(ctx context.Context, name string) (*domain.CardGroup, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardGroup), args.Error(1)
}

func (m *MockCardGroupRepository) ListGroups(ctx context.Context) ([]domain.CardGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardGroup), args.Error(1)
}

func (m *MockCardGroupRepository) SaveGroup(ctx context.Context, group domain.CardGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockCardGroupRepository) UpdateGroup(ctx context.Context, group domain.CardGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockCardGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

// --- Mock BankColorRepository ---

type MockBankColorRepository struct {
	mock.Mock
}

var _ portsrepo.BankColorRepositoryFacade = (*MockBankColorRepository)(nil)

func (m *MockBankColorRepository) ListBankColors(ctx context.Context) ([]domain.BankColor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankColor), args.Error(1)
}

func (m *MockBankColorRepository) UpsertBankColor(ctx context.Context, color domain.BankColor) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

// --- Mock ClientRepository ---

type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByName(ctx context.Context, name string) (*domain.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, query string, status *domain.ClientStatus) ([]domain.Client, error) {
	args := m.Called(ctx, query, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter)
	var nextToken *string
	if args.Get(1) != nil {
		nextToken = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, nextToken, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), nextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListForCards(ctx context.Context, cardIDs []string, until *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, cardIDs, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountByCard(ctx context.Context, cardID string) (int64, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock WithdrawalRepository ---

type MockWithdrawalRepository struct {
	mock.Mock
}

var _ portsrepo.WithdrawalRepositoryWithTx = (*MockWithdrawalRepository)(nil)

func (m *MockWithdrawalRepository) ListForCards(ctx context.Context, cardIDs []string, untilDate *time.Time) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, cardIDs, untilDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) ListForDay(ctx context.Context, day time.Time) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindForDayInTx(ctx context.Context, tx pgx.Tx, cardID string, day time.Time) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, tx, cardID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	args := m.Called(ctx, tx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) UpdateWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	args := m.Called(ctx, tx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) DeleteWithdrawalsInTx(ctx context.Context, tx pgx.Tx, withdrawalIDs []string) error {
	args := m.Called(ctx, tx, withdrawalIDs)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) DeleteByCardInTx(ctx context.Context, tx pgx.Tx, cardID string) error {
	args := m.Called(ctx, tx, cardID)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockWithdrawalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetPaymentSummaries(ctx context.Context, from, to *time.Time, clientID *string, tz string) ([]domain.PaymentSummaryRow, error) {
	args := m.Called(ctx, from, to, clientID, tz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentSummaryRow), args.Error(1)
}

// --- Mock CardGroupService (as used by the card service) ---

type MockCardGroupService struct {
	mock.Mock
}

var _ portssvc.CardGroupSvcFacade = (*MockCardGroupService)(nil)

func (m *MockCardGroupService) GetOrCreateGroup(ctx context.Context, name string, creatorUserID string) (*domain.CardGroup, error) {
	args := m.Called(ctx, name, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardGroup), args.Error(1)
}

func (m *MockCardGroupService) ListGroups(ctx context.Context) ([]domain.CardGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardGroup), args.Error(1)
}

func (m *MockCardGroupService) RenameGroup(ctx context.Context, groupID string, req dto.RenameCardGroupRequest, updaterUserID string) (*domain.CardGroup, error) {
	args := m.Called(ctx, groupID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardGroup), args.Error(1)
}

func (m *MockCardGroupService) DeleteGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

// --- Mock UserService (as used by the token service) ---

type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ProvisionAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
