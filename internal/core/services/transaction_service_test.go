package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/core/services"
	"github.com/shoplite/shop_management_app/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, items []domain.TransactionItem, deltas []domain.StockDelta) ([]string, error) {
	args := m.Called(ctx, txn, items, deltas)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) SettleTransaction(ctx context.Context, shopID, transactionID, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, shopID, transactionID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) CancelTransaction(ctx context.Context, shopID, transactionID string, deltas []domain.StockDelta, updatedBy string, updatedAt time.Time) ([]string, error) {
	args := m.Called(ctx, shopID, transactionID, deltas, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionItem), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByShop(ctx context.Context, shopID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, shopID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByParty(ctx context.Context, shopID, partyID string, role domain.PartyRole, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, shopID, partyID, role, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) FindOverdueTransactions(ctx context.Context, shopID string, asOf time.Time, graceWindow time.Duration) ([]domain.Transaction, error) {
	args := m.Called(ctx, shopID, asOf, graceWindow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) AggregatePartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole) (decimal.Decimal, error) {
	args := m.Called(ctx, shopID, partyID, role)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, shopID, productID, updatedBy string) error {
	args := m.Called(ctx, shopID, productID, updatedBy)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, shopID string, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, shopID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProductsByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStockProducts(ctx context.Context, shopID string) ([]domain.Product, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStockAmong(ctx context.Context, shopID string, productIDs []string) ([]domain.Product, error) {
	args := m.Called(ctx, shopID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomersByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// --- Mock VendorRepository ---
type MockVendorRepository struct {
	mock.Mock
}

var _ portsrepo.VendorRepositoryFacade = (*MockVendorRepository)(nil)

func (m *MockVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ListVendorsByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Vendor, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

// --- Mock ShopAuthorizer ---
type MockShopAuthorizer struct {
	mock.Mock
}

var _ portssvc.ShopAuthorizerSvc = (*MockShopAuthorizer)(nil)

func (m *MockShopAuthorizer) AuthorizeUserAction(ctx context.Context, userID, shopID string, requiredRole domain.UserShopRole) error {
	args := m.Called(ctx, userID, shopID, requiredRole)
	return args.Error(0)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) GetPartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole, requestingUserID string) (decimal.Decimal, error) {
	args := m.Called(ctx, shopID, partyID, role, requestingUserID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) InvalidatePartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole) {
	m.Called(ctx, shopID, partyID, role)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.NotificationDispatcher = (*MockNotifier)(nil)

func (m *MockNotifier) Emit(ctx context.Context, event domain.Event) (*domain.Notification, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockProductRepo  *MockProductRepository
	mockCustomerRepo *MockCustomerRepository
	mockVendorRepo   *MockVendorRepository
	mockShopSvc      *MockShopAuthorizer
	mockBalanceSvc   *MockBalanceService
	mockNotifier     *MockNotifier
	service          portssvc.TransactionSvcFacade

	shopID    string
	userID    string
	productID string
	customer  domain.Customer
	vendor    domain.Vendor
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockVendorRepo = new(MockVendorRepository)
	suite.mockShopSvc = new(MockShopAuthorizer)
	suite.mockBalanceSvc = new(MockBalanceService)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockProductRepo,
		suite.mockCustomerRepo,
		suite.mockVendorRepo,
		suite.mockShopSvc,
		suite.mockBalanceSvc,
		suite.mockNotifier,
	)

	suite.shopID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.productID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		ShopID:     suite.shopID,
		Name:       "Asha Traders",
		IsActive:   true,
	}
	suite.vendor = domain.Vendor{
		VendorID: uuid.NewString(),
		ShopID:   suite.shopID,
		Name:     "Metro Wholesale",
		IsActive: true,
	}
}

func (suite *TransactionServiceTestSuite) saleRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerID: &suite.customer.CustomerID,
		Items: []dto.TransactionItemRequest{
			{ProductID: &suite.productID, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
		PaidAmount: decimal.NewFromInt(40),
		Discount:   decimal.NewFromInt(10),
	}
}

// --- CreateSale ---

func (suite *TransactionServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	req := suite.saleRequest()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	var savedDeltas []domain.StockDelta
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.TransactionItem"), mock.AnythingOfType("[]domain.StockDelta")).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(3).([]domain.StockDelta)
		}).
		Return([]string{suite.productID}, nil).Once()

	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer).Return().Once()
	suite.mockNotifier.On("Emit", ctx, mock.AnythingOfType("domain.Event")).Return(&domain.Notification{}, nil).Once()
	suite.mockProductRepo.On("FindLowStockAmong", ctx, suite.shopID, []string{suite.productID}).Return([]domain.Product{}, nil).Once()

	txn, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Sale, txn.Type)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(90)), "amount should be subtotal minus discount")
	suite.True(txn.DueAmount.Equal(decimal.NewFromInt(50)))
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Equal(suite.customer.Name, txn.CustomerName)
	suite.Equal(suite.userID, txn.CreatedBy)

	suite.Require().Len(savedDeltas, 1)
	suite.Equal(suite.productID, savedDeltas[0].ProductID)
	suite.Equal(int64(2), savedDeltas[0].Quantity)
	suite.Equal(domain.StockDecrement, savedDeltas[0].Direction)

	suite.mockShopSvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateSale_FullyPaidIsCompleted() {
	ctx := context.Background()
	req := suite.saleRequest()
	req.PaidAmount = decimal.NewFromInt(90)

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return([]string{suite.productID}, nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer).Return().Once()
	suite.mockNotifier.On("Emit", ctx, mock.Anything).Return(&domain.Notification{}, nil).Once()
	suite.mockProductRepo.On("FindLowStockAmong", ctx, suite.shopID, []string{suite.productID}).Return([]domain.Product{}, nil).Once()

	txn, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.True(txn.DueAmount.IsZero())
}

func (suite *TransactionServiceTestSuite) TestCreateSale_Overpayment() {
	ctx := context.Background()
	req := suite.saleRequest()
	req.PaidAmount = decimal.NewFromInt(200)

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverpayment)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateSale_AuthorizationFail() {
	ctx := context.Background()
	req := suite.saleRequest()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateSale_ItemReferencesBothProductAndService() {
	ctx := context.Background()
	serviceID := uuid.NewString()
	req := suite.saleRequest()
	req.Items[0].ServiceID = &serviceID

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateSale_DiscountExceedsSubtotal() {
	ctx := context.Background()
	req := suite.saleRequest()
	req.Discount = decimal.NewFromInt(500)

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()
	req := suite.saleRequest()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Emit", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateSale_CustomerFromAnotherShop() {
	ctx := context.Background()
	req := suite.saleRequest()
	foreign := suite.customer
	foreign.ShopID = uuid.NewString()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&foreign, nil).Once()

	_, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateSale_EmitFailureIsNonFatal() {
	ctx := context.Background()
	req := suite.saleRequest()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return([]string{suite.productID}, nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer).Return().Once()
	suite.mockNotifier.On("Emit", ctx, mock.Anything).Return(nil, assert.AnError).Once()
	suite.mockProductRepo.On("FindLowStockAmong", ctx, suite.shopID, []string{suite.productID}).Return(nil, assert.AnError).Once()

	txn, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
}

func (suite *TransactionServiceTestSuite) TestCreateSale_LowStockEmitsNotification() {
	ctx := context.Background()
	req := suite.saleRequest()
	lowProduct := domain.Product{
		ProductID:     suite.productID,
		ShopID:        suite.shopID,
		Name:          "Basmati Rice 5kg",
		StockQuantity: 2,
		MinStockLevel: 5,
		IsActive:      true,
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return([]string{suite.productID}, nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer).Return().Once()
	suite.mockProductRepo.On("FindLowStockAmong", ctx, suite.shopID, []string{suite.productID}).Return([]domain.Product{lowProduct}, nil).Once()

	suite.mockNotifier.On("Emit", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.NotifyNewSale
	})).Return(&domain.Notification{}, nil).Once()
	suite.mockNotifier.On("Emit", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.NotifyLowStock
	})).Return(&domain.Notification{}, nil).Once()

	_, err := suite.service.CreateSale(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertExpectations(suite.T())
}

// --- CreatePurchase ---

func (suite *TransactionServiceTestSuite) TestCreatePurchase_Success() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		VendorID: suite.vendor.VendorID,
		Items: []dto.TransactionItemRequest{
			{ProductID: &suite.productID, Quantity: 10, UnitPrice: decimal.NewFromInt(30)},
		},
		PaidAmount: decimal.NewFromInt(100),
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockVendorRepo.On("FindVendorByID", ctx, suite.vendor.VendorID).Return(&suite.vendor, nil).Once()

	var savedDeltas []domain.StockDelta
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(3).([]domain.StockDelta)
		}).
		Return([]string{suite.productID}, nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.vendor.VendorID, domain.PartyVendor).Return().Once()
	suite.mockNotifier.On("Emit", ctx, mock.Anything).Return(&domain.Notification{}, nil).Once()
	suite.mockProductRepo.On("FindLowStockAmong", ctx, suite.shopID, []string{suite.productID}).Return([]domain.Product{}, nil).Once()

	txn, err := suite.service.CreatePurchase(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Purchase, txn.Type)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(300)))
	suite.True(txn.DueAmount.Equal(decimal.NewFromInt(200)))
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Require().NotNil(txn.VendorID)
	suite.Equal(suite.vendor.VendorID, *txn.VendorID)

	suite.Require().Len(savedDeltas, 1)
	suite.Equal(domain.StockIncrement, savedDeltas[0].Direction)
	suite.Equal(int64(10), savedDeltas[0].Quantity)
}

func (suite *TransactionServiceTestSuite) TestCreatePurchase_VendorNotFound() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		VendorID: suite.vendor.VendorID,
		Items: []dto.TransactionItemRequest{
			{ProductID: &suite.productID, Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
		},
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockVendorRepo.On("FindVendorByID", ctx, suite.vendor.VendorID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- CreatePayment ---

func (suite *TransactionServiceTestSuite) TestCreatePayment_FromCustomer() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		PartyID: suite.customer.CustomerID,
		Role:    domain.PartyCustomer,
		Amount:  decimal.NewFromInt(75),
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	var savedItems []domain.TransactionItem
	var savedDeltas []domain.StockDelta
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			if args.Get(2) != nil {
				savedItems = args.Get(2).([]domain.TransactionItem)
			}
			if args.Get(3) != nil {
				savedDeltas = args.Get(3).([]domain.StockDelta)
			}
		}).
		Return([]string{}, nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer).Return().Once()
	suite.mockNotifier.On("Emit", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.NotifyPaymentReceived
	})).Return(&domain.Notification{}, nil).Once()

	txn, err := suite.service.CreatePayment(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentReceived, txn.Type)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.True(txn.DueAmount.IsZero())
	suite.True(txn.PaidAmount.Equal(req.Amount))
	suite.Empty(savedItems, "payments carry no line items")
	suite.Empty(savedDeltas, "payments never touch stock")
}

func (suite *TransactionServiceTestSuite) TestCreatePayment_ToVendor() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		PartyID: suite.vendor.VendorID,
		Role:    domain.PartyVendor,
		Amount:  decimal.NewFromInt(120),
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockVendorRepo.On("FindVendorByID", ctx, suite.vendor.VendorID).Return(&suite.vendor, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.vendor.VendorID, domain.PartyVendor).Return().Once()
	suite.mockNotifier.On("Emit", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.NotifyPaymentMade
	})).Return(&domain.Notification{}, nil).Once()

	txn, err := suite.service.CreatePayment(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentMade, txn.Type)
	suite.Require().NotNil(txn.VendorID)
	suite.Equal(suite.vendor.VendorID, *txn.VendorID)
}

func (suite *TransactionServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		PartyID: suite.customer.CustomerID,
		Role:    domain.PartyCustomer,
		Amount:  decimal.Zero,
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- CreateExpense ---

func (suite *TransactionServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:      decimal.NewFromInt(45),
		Description: "Electricity bill",
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil).Once()
	suite.mockNotifier.On("Emit", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.NotifyExpenseRecorded
	})).Return(&domain.Notification{}, nil).Once()

	txn, err := suite.service.CreateExpense(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, txn.Type)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.True(txn.DueAmount.IsZero())
	suite.Equal(req.Description, txn.Note)
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "InvalidatePartyBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_MissingDescription() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{Amount: decimal.NewFromInt(45)}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateExpense(ctx, suite.shopID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- SetTransactionStatus ---

func (suite *TransactionServiceTestSuite) pendingSale(transactionID string) domain.Transaction {
	return domain.Transaction{
		TransactionID: transactionID,
		ShopID:        suite.shopID,
		Type:          domain.Sale,
		Amount:        decimal.NewFromInt(90),
		PaidAmount:    decimal.NewFromInt(40),
		DueAmount:     decimal.NewFromInt(50),
		Status:        domain.StatusPending,
		Date:          time.Now(),
		CustomerID:    &suite.customer.CustomerID,
		CustomerName:  suite.customer.Name,
	}
}

func (suite *TransactionServiceTestSuite) TestSetTransactionStatus_Settle() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	pending := suite.pendingSale(transactionID)
	settled := pending
	settled.Status = domain.StatusCompleted
	settled.PaidAmount = settled.Amount
	settled.DueAmount = decimal.Zero

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&pending, nil).Once()
	suite.mockTxnRepo.On("SettleTransaction", ctx, suite.shopID, transactionID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer).Return().Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&settled, nil).Once()

	txn, err := suite.service.SetTransactionStatus(ctx, suite.shopID, transactionID, domain.StatusCompleted, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.True(txn.DueAmount.IsZero())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestSetTransactionStatus_CancelReversesStock() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	pending := suite.pendingSale(transactionID)
	cancelled := pending
	cancelled.Status = domain.StatusCancelled

	items := []domain.TransactionItem{
		{ItemID: uuid.NewString(), TransactionID: transactionID, ProductID: &suite.productID, Quantity: 2, UnitPrice: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(100)},
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&pending, nil).Once()
	suite.mockTxnRepo.On("FindItemsByTransactionID", ctx, transactionID).Return(items, nil).Once()

	var reversedDeltas []domain.StockDelta
	suite.mockTxnRepo.On("CancelTransaction", ctx, suite.shopID, transactionID, mock.AnythingOfType("[]domain.StockDelta"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			reversedDeltas = args.Get(3).([]domain.StockDelta)
		}).
		Return([]string{suite.productID}, nil).Once()
	suite.mockBalanceSvc.On("InvalidatePartyBalance", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer).Return().Once()
	suite.mockProductRepo.On("FindLowStockAmong", ctx, suite.shopID, []string{suite.productID}).Return([]domain.Product{}, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&cancelled, nil).Once()

	txn, err := suite.service.SetTransactionStatus(ctx, suite.shopID, transactionID, domain.StatusCancelled, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, txn.Status)

	suite.Require().Len(reversedDeltas, 1)
	suite.Equal(domain.StockIncrement, reversedDeltas[0].Direction, "cancelling a sale restores stock")
	suite.Equal(int64(2), reversedDeltas[0].Quantity)
}

func (suite *TransactionServiceTestSuite) TestSetTransactionStatus_AlreadyCancelled() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	cancelled := suite.pendingSale(transactionID)
	cancelled.Status = domain.StatusCancelled

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&cancelled, nil).Once()

	_, err := suite.service.SetTransactionStatus(ctx, suite.shopID, transactionID, domain.StatusCompleted, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SettleTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestSetTransactionStatus_WrongShop() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	other := suite.pendingSale(transactionID)
	other.ShopID = uuid.NewString()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&other, nil).Once()

	_, err := suite.service.SetTransactionStatus(ctx, suite.shopID, transactionID, domain.StatusCompleted, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestSetTransactionStatus_PendingIsNotATarget() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	pending := suite.pendingSale(transactionID)

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&pending, nil).Once()

	_, err := suite.service.SetTransactionStatus(ctx, suite.shopID, transactionID, domain.StatusPending, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Reads ---

func (suite *TransactionServiceTestSuite) TestGetTransaction_LoadsItems() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	sale := suite.pendingSale(transactionID)
	items := []domain.TransactionItem{
		{ItemID: uuid.NewString(), TransactionID: transactionID, ProductID: &suite.productID, Quantity: 2, UnitPrice: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(100)},
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&sale, nil).Once()
	suite.mockTxnRepo.On("FindItemsByTransactionID", ctx, transactionID).Return(items, nil).Once()

	txn, err := suite.service.GetTransaction(ctx, suite.shopID, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(txn.Items, 1)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_WrongShop() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	other := suite.pendingSale(transactionID)
	other.ShopID = uuid.NewString()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(&other, nil).Once()

	_, err := suite.service.GetTransaction(ctx, suite.shopID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindItemsByTransactionID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultLimit() {
	ctx := context.Background()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleReadOnly).Return(nil).Once()
	expectedFilter := portsrepo.ListTransactionsFilter{Limit: 20, Offset: 0}
	suite.mockTxnRepo.On("ListTransactionsByShop", ctx, suite.shopID, expectedFilter).Return([]domain.Transaction{}, int64(0), nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.shopID, suite.userID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Equal(20, resp.Pagination.Limit)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListPartyLedger_PassesToken() {
	ctx := context.Background()
	inToken := "opaque-cursor"
	outToken := "next-cursor"
	ledger := []domain.Transaction{suite.pendingSale(uuid.NewString())}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByParty", ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer, 10, &inToken).Return(ledger, outToken, nil).Once()

	resp, err := suite.service.ListPartyLedger(ctx, suite.shopID, suite.customer.CustomerID, domain.PartyCustomer, suite.userID, dto.PartyLedgerParams{Limit: 10, NextToken: &inToken})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(outToken, *resp.NextToken)
}

func (suite *TransactionServiceTestSuite) TestListPartyLedger_InvalidRole() {
	ctx := context.Background()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleReadOnly).Return(nil).Once()

	_, err := suite.service.ListPartyLedger(ctx, suite.shopID, suite.customer.CustomerID, domain.PartyRole("SUPPLIER"), suite.userID, dto.PartyLedgerParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}
