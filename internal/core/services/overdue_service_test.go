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
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/core/services"
)

const testGraceWindow = 30 * 24 * time.Hour

type OverdueServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockTransactionRepository
	mockShopSvc    *MockShopAuthorizer
	mockNotifier   *MockNotifier
	service        portssvc.OverdueSvcFacade

	shopID string
	userID string
	asOf   time.Time
}

func TestOverdueServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OverdueServiceTestSuite))
}

func (suite *OverdueServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockTransactionRepository)
	suite.mockShopSvc = new(MockShopAuthorizer)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewOverdueService(suite.mockLedgerRepo, suite.mockShopSvc, suite.mockNotifier, testGraceWindow)

	suite.shopID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Now()
}

func (suite *OverdueServiceTestSuite) overdueSale(customerName string, due int64) domain.Transaction {
	pastDue := suite.asOf.Add(-48 * time.Hour)
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		ShopID:        suite.shopID,
		Type:          domain.Sale,
		Amount:        decimal.NewFromInt(due),
		DueAmount:     decimal.NewFromInt(due),
		Status:        domain.StatusPending,
		Date:          suite.asOf.Add(-72 * time.Hour),
		DueDate:       &pastDue,
		CustomerName:  customerName,
	}
}

// --- Test Cases ---

func (suite *OverdueServiceTestSuite) TestFindOverdue_Success() {
	ctx := context.Background()
	overdue := []domain.Transaction{suite.overdueSale("Asha Traders", 50)}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockLedgerRepo.On("FindOverdueTransactions", ctx, suite.shopID, suite.asOf, testGraceWindow).Return(overdue, nil).Once()

	result, err := suite.service.FindOverdue(ctx, suite.shopID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertNotCalled(suite.T(), "Emit", mock.Anything, mock.Anything)
}

func (suite *OverdueServiceTestSuite) TestFindOverdue_AuthorizationFail() {
	ctx := context.Background()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.FindOverdue(ctx, suite.shopID, suite.asOf, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindOverdueTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OverdueServiceTestSuite) TestScanAndNotify_EmitsPerTransaction() {
	ctx := context.Background()
	overdue := []domain.Transaction{
		suite.overdueSale("Asha Traders", 50),
		suite.overdueSale("Ravi Stores", 120),
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("FindOverdueTransactions", ctx, suite.shopID, suite.asOf, testGraceWindow).Return(overdue, nil).Once()
	suite.mockNotifier.On("Emit", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.NotifyOverduePayment && e.ShopID == suite.shopID
	})).Return(&domain.Notification{}, nil).Twice()

	result, err := suite.service.ScanAndNotify(ctx, suite.shopID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Len(result, 2)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *OverdueServiceTestSuite) TestScanAndNotify_EmitFailureSkips() {
	ctx := context.Background()
	overdue := []domain.Transaction{
		suite.overdueSale("Asha Traders", 50),
		suite.overdueSale("Ravi Stores", 120),
	}

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("FindOverdueTransactions", ctx, suite.shopID, suite.asOf, testGraceWindow).Return(overdue, nil).Once()
	suite.mockNotifier.On("Emit", ctx, mock.Anything).Return(nil, assert.AnError).Twice()

	result, err := suite.service.ScanAndNotify(ctx, suite.shopID, suite.asOf, suite.userID)

	suite.Require().NoError(err, "dispatch failures must not fail the scan")
	suite.Len(result, 2)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *OverdueServiceTestSuite) TestScanAndNotify_EmptyResult() {
	ctx := context.Background()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("FindOverdueTransactions", ctx, suite.shopID, suite.asOf, testGraceWindow).Return([]domain.Transaction{}, nil).Once()

	result, err := suite.service.ScanAndNotify(ctx, suite.shopID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(result)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Emit", mock.Anything, mock.Anything)
}

func (suite *OverdueServiceTestSuite) TestScanAndNotify_RequiresMemberRole() {
	ctx := context.Background()

	suite.mockShopSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.shopID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.ScanAndNotify(ctx, suite.shopID, suite.asOf, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}
