package usecases_test

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) GetByKey(ctx context.Context, key string) (*entities.Route, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Route), args.Error(1)
}

func (m *MockRouteRepository) Upsert(ctx context.Context, route *entities.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) List(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error) {
	args := m.Called(ctx, sourceChainID, destChainID, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Route), args.Get(1).(int64), args.Error(2)
}

// Mock FeeRepository
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) GetSettings(ctx context.Context) (*entities.FeeSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FeeSettings), args.Error(1)
}

func (m *MockFeeRepository) UpdateSettings(ctx context.Context, basisPoints uint32) error {
	args := m.Called(ctx, basisPoints)
	return args.Error(0)
}

func (m *MockFeeRepository) IsCollector(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeeRepository) SetCollector(ctx context.Context, address string, enabled bool) error {
	args := m.Called(ctx, address, enabled)
	return args.Error(0)
}

func (m *MockFeeRepository) ListCollectors(ctx context.Context) ([]*entities.FeeCollector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FeeCollector), args.Error(1)
}

func (m *MockFeeRepository) Credit(ctx context.Context, token string, amount *big.Int) error {
	args := m.Called(ctx, token, amount)
	return args.Error(0)
}

func (m *MockFeeRepository) GetBalance(ctx context.Context, token string) (*big.Int, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockFeeRepository) ListBalances(ctx context.Context) ([]*entities.FeeBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FeeBalance), args.Error(1)
}

// Mock TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *entities.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) GetByTransferID(ctx context.Context, transferID string) (*entities.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transfer), args.Error(1)
}

func (m *MockTransferRepository) List(ctx context.Context, caller *string, pagination utils.PaginationParams) ([]*entities.Transfer, int64, error) {
	args := m.Called(ctx, caller, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transfer), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransferRepository) ListByStatus(ctx context.Context, status entities.TransferStatus, protocol entities.Protocol, limit int) ([]*entities.Transfer, error) {
	args := m.Called(ctx, status, protocol, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transfer), args.Error(1)
}

func (m *MockTransferRepository) UpdateStatus(ctx context.Context, transferID string, status entities.TransferStatus) error {
	args := m.Called(ctx, transferID, status)
	return args.Error(0)
}

// Mock TransferEventRepository
type MockTransferEventRepository struct {
	mock.Mock
}

func (m *MockTransferEventRepository) Create(ctx context.Context, event *entities.TransferEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTransferEventRepository) GetByTransferID(ctx context.Context, transferID string) ([]*entities.TransferEvent, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TransferEvent), args.Error(1)
}

func (m *MockTransferEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TransferEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferEvent), args.Error(1)
}

// Mock NonceRepository
type MockNonceRepository struct {
	mock.Mock
}

func (m *MockNonceRepository) Next(ctx context.Context, caller string) (uint64, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(uint64), args.Error(1)
}

// Mock InboundNonceRepository
type MockInboundNonceRepository struct {
	mock.Mock
}

func (m *MockInboundNonceRepository) Consume(ctx context.Context, sourceDomain uint32, nonce uint64) error {
	return m.Called(ctx, sourceDomain, nonce).Error(0)
}

func (m *MockInboundNonceRepository) Consumed(ctx context.Context, sourceDomain uint32, nonce uint64) (bool, error) {
	args := m.Called(ctx, sourceDomain, nonce)
	return args.Bool(0), args.Error(1)
}

// Mock AuthorizedSenderRepository
type MockAuthorizedSenderRepository struct {
	mock.Mock
}

func (m *MockAuthorizedSenderRepository) Get(ctx context.Context, sourceDomain uint32, sender string) (*entities.AuthorizedSender, error) {
	args := m.Called(ctx, sourceDomain, sender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthorizedSender), args.Error(1)
}

func (m *MockAuthorizedSenderRepository) Set(ctx context.Context, sourceDomain uint32, sender string, enabled bool) error {
	args := m.Called(ctx, sourceDomain, sender, enabled)
	return args.Error(0)
}

func (m *MockAuthorizedSenderRepository) List(ctx context.Context) ([]*entities.AuthorizedSender, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AuthorizedSender), args.Error(1)
}

// Mock SupportedTokenRepository
type MockSupportedTokenRepository struct {
	mock.Mock
}

func (m *MockSupportedTokenRepository) IsSupported(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupportedTokenRepository) Set(ctx context.Context, token string, enabled bool) error {
	args := m.Called(ctx, token, enabled)
	return args.Error(0)
}

func (m *MockSupportedTokenRepository) List(ctx context.Context) ([]*entities.SupportedToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SupportedToken), args.Error(1)
}

// Mock ProtocolContractRepository
type MockProtocolContractRepository struct {
	mock.Mock
}

func (m *MockProtocolContractRepository) GetByProtocol(ctx context.Context, protocol entities.Protocol) (*entities.ProtocolContract, error) {
	args := m.Called(ctx, protocol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProtocolContract), args.Error(1)
}

func (m *MockProtocolContractRepository) Set(ctx context.Context, protocol entities.Protocol, address string) error {
	args := m.Called(ctx, protocol, address)
	return args.Error(0)
}

func (m *MockProtocolContractRepository) List(ctx context.Context) ([]*entities.ProtocolContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProtocolContract), args.Error(1)
}

// Mock TokenCustody
type MockCustody struct {
	mock.Mock
}

func (m *MockCustody) Address() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockCustody) Balance(ctx context.Context, token, owner string) (*big.Int, error) {
	args := m.Called(ctx, token, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockCustody) Allowance(ctx context.Context, token, owner string) (*big.Int, error) {
	args := m.Called(ctx, token, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockCustody) Pull(ctx context.Context, token, from string, amount *big.Int) (string, error) {
	args := m.Called(ctx, token, from, amount)
	return args.String(0), args.Error(1)
}

func (m *MockCustody) Release(ctx context.Context, token, to string, amount *big.Int) (string, error) {
	args := m.Called(ctx, token, to, amount)
	return args.String(0), args.Error(1)
}

// Mock SwapAdapter
type MockSwapAdapter struct {
	mock.Mock
}

func (m *MockSwapAdapter) Swap(ctx context.Context, pool, tokenIn, tokenOut string, amountIn, minAmountOut *big.Int, recipient string) (*big.Int, string, error) {
	args := m.Called(ctx, pool, tokenIn, tokenOut, amountIn, minAmountOut, recipient)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*big.Int), args.String(1), args.Error(2)
}

// Mock BridgeAdapter
type MockBridgeAdapter struct {
	mock.Mock
}

func (m *MockBridgeAdapter) Send(ctx context.Context, req *entities.BridgeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockBridgeAdapter) QuoteNativeFee(ctx context.Context, req *entities.BridgeRequest) (*big.Int, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// Mock EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event *entities.TransferEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
