package services_test

import (
	"context"
	"testing"

	"github.com/clinidesk/cashdesk_app/internal/apperrors"
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/core/services"
	"github.com/clinidesk/cashdesk_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MovementRepository ---
type MockMovementRepository struct {
	mock.Mock
}

// Ensure MockMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*MockMovementRepository)(nil)

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.CashMovement) (*domain.CashMovement, error) {
	args := m.Called(ctx, movement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashMovement), args.Error(1)
}

func (m *MockMovementRepository) SaveReversal(ctx context.Context, reversal domain.CashMovement, originalMovementID string) (*domain.CashMovement, error) {
	args := m.Called(ctx, reversal, originalMovementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashMovement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.CashMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashMovement), args.Error(1)
}

func (m *MockMovementRepository) ListMovements(ctx context.Context, filter portsrepo.ListMovementsFilter, limit int, nextToken *string) ([]domain.CashMovement, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.CashMovement), returnedNextToken, args.Error(2)
}

// --- Mock DashboardInvalidator ---
type MockDashboardInvalidator struct {
	mock.Mock
}

// Ensure MockDashboardInvalidator implements portssvc.DashboardInvalidator
var _ portssvc.DashboardInvalidator = (*MockDashboardInvalidator)(nil)

func (m *MockDashboardInvalidator) InvalidateDashboard(ctx context.Context) {
	m.Called(ctx)
}

// --- Test Suite Setup ---
type MovementServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	mockSessionRepo  *MockSessionRepository
	mockInvalidator  *MockDashboardInvalidator
	service          portssvc.MovementSvcFacade
	registerID       string
	userID           string
}

func (suite *MovementServiceTestSuite) SetupTest() {
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockInvalidator = new(MockDashboardInvalidator)
	suite.service = services.NewMovementService(suite.mockMovementRepo, suite.mockSessionRepo, nil, suite.mockInvalidator)
	suite.registerID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *MovementServiceTestSuite) TestPostMovement_Success() {
	ctx := context.Background()
	req := dto.PostMovementRequest{
		RegisterID:   suite.registerID,
		MovementType: "INCOME",
		Category:     "  consultation  ",
		Amount:       decimal.NewFromInt(250),
		Method:       "CASH",
		Description:  "Consultation payment",
	}

	suite.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(mv domain.CashMovement) bool {
		return mv.RegisterID == suite.registerID &&
			mv.MovementType == domain.Income &&
			mv.Category == "consultation" &&
			mv.Amount.Equal(decimal.NewFromInt(250)) &&
			mv.OriginalMovementID == nil &&
			mv.CreatedBy == suite.userID
	})).Return(&domain.CashMovement{
		MovementID:   uuid.NewString(),
		RegisterID:   suite.registerID,
		MovementType: domain.Income,
		Amount:       decimal.NewFromInt(250),
	}, nil).Once()
	suite.mockInvalidator.On("InvalidateDashboard", ctx).Once()

	posted, err := suite.service.PostMovement(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal(domain.Income, posted.MovementType)
	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestPostMovement_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.PostMovementRequest{
		RegisterID:   suite.registerID,
		MovementType: "EXPENSE",
		Category:     "supplies",
		Amount:       decimal.Zero,
		Method:       "CASH",
		Description:  "Zero amount",
	}

	_, err := suite.service.PostMovement(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestPostMovement_MissingCategory() {
	ctx := context.Background()
	req := dto.PostMovementRequest{
		RegisterID:   suite.registerID,
		MovementType: "INCOME",
		Category:     "   ",
		Amount:       decimal.NewFromInt(10),
		Method:       "CASH",
		Description:  "No category",
	}

	_, err := suite.service.PostMovement(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCategoryMissing)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestPostMovement_SessionNotOpen() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	req := dto.PostMovementRequest{
		RegisterID:   suite.registerID,
		SessionID:    &sessionID,
		MovementType: "INCOME",
		Category:     "consultation",
		Amount:       decimal.NewFromInt(50),
		Method:       "CASH",
		Description:  "Posting into a closed session",
	}

	suite.mockMovementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.CashMovement")).
		Return(nil, apperrors.ErrSessionNotOpen).Once()

	_, err := suite.service.PostMovement(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSessionNotOpen)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertNotCalled(suite.T(), "InvalidateDashboard", mock.Anything)
}

func (suite *MovementServiceTestSuite) TestReverseMovement_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	openSessionID := uuid.NewString()
	original := &domain.CashMovement{
		MovementID:   originalID,
		RegisterID:   suite.registerID,
		MovementType: domain.Income,
		Category:     "consultation",
		Amount:       decimal.NewFromInt(250),
		Method:       domain.MethodCash,
		Description:  "Consultation payment",
	}
	req := dto.ReverseMovementRequest{Reason: "duplicate entry"}

	suite.mockMovementRepo.On("FindMovementByID", ctx, originalID).Return(original, nil).Once()
	suite.mockSessionRepo.On("FindOpenSessionByRegister", ctx, suite.registerID).
		Return(&domain.CashSession{SessionID: openSessionID, RegisterID: suite.registerID, Status: domain.SessionOpen}, nil).Once()
	suite.mockMovementRepo.On("SaveReversal", ctx, mock.MatchedBy(func(rv domain.CashMovement) bool {
		return rv.MovementType == domain.Expense &&
			rv.Amount.Equal(original.Amount) &&
			rv.Category == original.Category &&
			rv.SessionID != nil && *rv.SessionID == openSessionID &&
			rv.OriginalMovementID != nil && *rv.OriginalMovementID == originalID
	}), originalID).Return(&domain.CashMovement{
		MovementID:         uuid.NewString(),
		RegisterID:         suite.registerID,
		MovementType:       domain.Expense,
		Amount:             original.Amount,
		OriginalMovementID: &originalID,
	}, nil).Once()
	suite.mockInvalidator.On("InvalidateDashboard", ctx).Once()

	reversal, err := suite.service.ReverseMovement(ctx, originalID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, reversal.MovementType)
	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestReverseMovement_NoOpenSession() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.CashMovement{
		MovementID:   originalID,
		RegisterID:   suite.registerID,
		MovementType: domain.Expense,
		Category:     "supplies",
		Amount:       decimal.NewFromInt(30),
		Method:       domain.MethodCash,
		Description:  "Gauze restock",
	}
	req := dto.ReverseMovementRequest{Reason: "wrong register"}

	suite.mockMovementRepo.On("FindMovementByID", ctx, originalID).Return(original, nil).Once()
	suite.mockSessionRepo.On("FindOpenSessionByRegister", ctx, suite.registerID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMovementRepo.On("SaveReversal", ctx, mock.MatchedBy(func(rv domain.CashMovement) bool {
		return rv.MovementType == domain.Income && rv.SessionID == nil
	}), originalID).Return(&domain.CashMovement{
		MovementID:         uuid.NewString(),
		MovementType:       domain.Income,
		OriginalMovementID: &originalID,
	}, nil).Once()
	suite.mockInvalidator.On("InvalidateDashboard", ctx).Once()

	_, err := suite.service.ReverseMovement(ctx, originalID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestReverseMovement_SessionClosesMidway() {
	ctx := context.Background()
	originalID := uuid.NewString()
	closingSessionID := uuid.NewString()
	original := &domain.CashMovement{
		MovementID:   originalID,
		RegisterID:   suite.registerID,
		MovementType: domain.Income,
		Category:     "consultation",
		Amount:       decimal.NewFromInt(120),
		Method:       domain.MethodCash,
		Description:  "Consultation payment",
	}
	req := dto.ReverseMovementRequest{Reason: "patient refund"}

	suite.mockMovementRepo.On("FindMovementByID", ctx, originalID).Return(original, nil).Once()
	// The lookup still sees an open session, but it closes before the
	// reversal transaction commits.
	suite.mockSessionRepo.On("FindOpenSessionByRegister", ctx, suite.registerID).
		Return(&domain.CashSession{SessionID: closingSessionID, RegisterID: suite.registerID, Status: domain.SessionOpen}, nil).Once()
	suite.mockMovementRepo.On("SaveReversal", ctx, mock.MatchedBy(func(rv domain.CashMovement) bool {
		return rv.SessionID != nil && *rv.SessionID == closingSessionID
	}), originalID).Return(nil, apperrors.ErrSessionNotOpen).Once()
	suite.mockMovementRepo.On("SaveReversal", ctx, mock.MatchedBy(func(rv domain.CashMovement) bool {
		return rv.SessionID == nil && rv.MovementType == domain.Expense
	}), originalID).Return(&domain.CashMovement{
		MovementID:         uuid.NewString(),
		RegisterID:         suite.registerID,
		MovementType:       domain.Expense,
		Amount:             original.Amount,
		OriginalMovementID: &originalID,
	}, nil).Once()
	suite.mockInvalidator.On("InvalidateDashboard", ctx).Once()

	reversal, err := suite.service.ReverseMovement(ctx, originalID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(reversal.SessionID)
	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestReverseMovement_AlreadyReversed() {
	ctx := context.Background()
	originalID := uuid.NewString()
	reversedBy := uuid.NewString()
	original := &domain.CashMovement{
		MovementID:           originalID,
		RegisterID:           suite.registerID,
		ReversedByMovementID: &reversedBy,
	}
	req := dto.ReverseMovementRequest{Reason: "again"}

	suite.mockMovementRepo.On("FindMovementByID", ctx, originalID).Return(original, nil).Once()

	_, err := suite.service.ReverseMovement(ctx, originalID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestReverseMovement_OfAReversal() {
	ctx := context.Background()
	reversalID := uuid.NewString()
	someOriginal := uuid.NewString()
	reversalMovement := &domain.CashMovement{
		MovementID:         reversalID,
		RegisterID:         suite.registerID,
		OriginalMovementID: &someOriginal,
	}
	req := dto.ReverseMovementRequest{Reason: "undo the undo"}

	suite.mockMovementRepo.On("FindMovementByID", ctx, reversalID).Return(reversalMovement, nil).Once()

	_, err := suite.service.ReverseMovement(ctx, reversalID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestReverseMovement_MissingReason() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.CashMovement{
		MovementID: originalID,
		RegisterID: suite.registerID,
	}
	req := dto.ReverseMovementRequest{Reason: "  "}

	suite.mockMovementRepo.On("FindMovementByID", ctx, originalID).Return(original, nil).Once()

	_, err := suite.service.ReverseMovement(ctx, originalID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestListMovements_InvalidType() {
	ctx := context.Background()
	params := dto.ListMovementsParams{MovementType: "TRANSFER", Limit: 20}

	_, err := suite.service.ListMovements(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "ListMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMovementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
