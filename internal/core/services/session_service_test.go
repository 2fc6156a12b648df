package services_test

import (
	"context"
	"testing"
	"time"

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

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

// Ensure MockSessionRepository implements portsrepo.SessionRepositoryFacade
var _ portsrepo.SessionRepositoryFacade = (*MockSessionRepository)(nil)

func (m *MockSessionRepository) CreateSession(ctx context.Context, session domain.CashSession) (*domain.CashSession, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockSessionRepository) CloseSession(ctx context.Context, sessionID string, closing portsrepo.SessionClosing, userID string, closedAt time.Time) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, closing, userID, closedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockSessionRepository) FindOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error) {
	args := m.Called(ctx, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockSessionRepository) ListSessions(ctx context.Context, filter portsrepo.ListSessionsFilter, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.CashSession), returnedNextToken, args.Error(2)
}

func (m *MockSessionRepository) AnnotateSession(ctx context.Context, sessionID string, notes *string, discrepancyNotes *string, userID string, updatedAt time.Time) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, notes, discrepancyNotes, userID, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

// --- Test Suite Setup ---
type SessionServiceTestSuite struct {
	suite.Suite
	mockSessionRepo *MockSessionRepository
	mockInvalidator *MockDashboardInvalidator
	service         portssvc.SessionSvcFacade
	registerID      string
	userID          string
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockInvalidator = new(MockDashboardInvalidator)
	suite.service = services.NewSessionService(suite.mockSessionRepo, nil, suite.mockInvalidator)
	suite.registerID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *SessionServiceTestSuite) TestOpenSession_Success() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{
		RegisterID:     suite.registerID,
		OpeningBalance: decimal.NewFromInt(100),
	}

	suite.mockSessionRepo.On("CreateSession", ctx, mock.MatchedBy(func(s domain.CashSession) bool {
		return s.RegisterID == suite.registerID &&
			s.Status == domain.SessionOpen &&
			s.OpeningBalance.Equal(decimal.NewFromInt(100)) &&
			s.ExpectedClosing.Equal(decimal.NewFromInt(100)) &&
			s.TotalIncome.IsZero() && s.TotalExpense.IsZero() &&
			s.CashierUserID == suite.userID
	})).Return(&domain.CashSession{
		SessionID:      uuid.NewString(),
		RegisterID:     suite.registerID,
		SessionNumber:  1,
		Status:         domain.SessionOpen,
		OpeningBalance: decimal.NewFromInt(100),
	}, nil).Once()
	suite.mockInvalidator.On("InvalidateDashboard", ctx).Once()

	opened, err := suite.service.OpenSession(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(opened)
	suite.Equal(1, opened.SessionNumber)
	suite.Equal(domain.SessionOpen, opened.Status)
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestOpenSession_NegativeOpeningBalance() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{
		RegisterID:     suite.registerID,
		OpeningBalance: decimal.NewFromInt(-1),
	}

	_, err := suite.service.OpenSession(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CreateSession", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestOpenSession_RegisterAlreadyHasOpenSession() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{
		RegisterID:     suite.registerID,
		OpeningBalance: decimal.NewFromInt(50),
	}

	suite.mockSessionRepo.On("CreateSession", ctx, mock.AnythingOfType("domain.CashSession")).
		Return(nil, apperrors.ErrSessionAlreadyOpen).Once()

	_, err := suite.service.OpenSession(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSessionAlreadyOpen)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertNotCalled(suite.T(), "InvalidateDashboard", mock.Anything)
}

func (suite *SessionServiceTestSuite) TestCloseSession_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	actual := decimal.NewFromInt(320)
	expected := decimal.NewFromInt(320)
	difference := decimal.Zero
	req := dto.CloseSessionRequest{ActualClosing: actual}

	suite.mockSessionRepo.On("CloseSession", ctx, sessionID, mock.MatchedBy(func(c portsrepo.SessionClosing) bool {
		return c.ActualClosing.Equal(actual) && c.Denominations == nil
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(&domain.CashSession{
		SessionID:       sessionID,
		Status:          domain.SessionClosed,
		ActualClosing:   &actual,
		ExpectedClosing: expected,
		Difference:      &difference,
	}, nil).Once()
	suite.mockInvalidator.On("InvalidateDashboard", ctx).Once()

	closed, err := suite.service.CloseSession(ctx, sessionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SessionClosed, closed.Status)
	suite.True(closed.Difference.IsZero())
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_DenominationTotalMatches() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	actual := decimal.NewFromInt(320)
	difference := decimal.Zero
	req := dto.CloseSessionRequest{
		ActualClosing: actual,
		// 3x100 + 2x10 = 320
		Denominations: map[string]int{"100": 3, "10": 2},
	}

	suite.mockSessionRepo.On("CloseSession", ctx, sessionID, mock.MatchedBy(func(c portsrepo.SessionClosing) bool {
		return c.Denominations["100"] == 3 && c.Denominations["10"] == 2
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(&domain.CashSession{
		SessionID:       sessionID,
		Status:          domain.SessionClosed,
		ActualClosing:   &actual,
		ExpectedClosing: actual,
		Difference:      &difference,
	}, nil).Once()
	suite.mockInvalidator.On("InvalidateDashboard", ctx).Once()

	_, err := suite.service.CloseSession(ctx, sessionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_DenominationTotalMismatch() {
	ctx := context.Background()
	req := dto.CloseSessionRequest{
		ActualClosing: decimal.NewFromInt(320),
		Denominations: map[string]int{"100": 3}, // totals 300, not 320
	}

	_, err := suite.service.CloseSession(ctx, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CloseSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestCloseSession_NegativeActualClosing() {
	ctx := context.Background()
	req := dto.CloseSessionRequest{ActualClosing: decimal.NewFromInt(-5)}

	_, err := suite.service.CloseSession(ctx, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CloseSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestCloseSession_AlreadyClosed() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	req := dto.CloseSessionRequest{ActualClosing: decimal.NewFromInt(100)}

	suite.mockSessionRepo.On("CloseSession", ctx, sessionID, mock.AnythingOfType("repositories.SessionClosing"), suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrSessionClosed).Once()

	_, err := suite.service.CloseSession(ctx, sessionID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSessionClosed)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestAnnotateSession_NothingToAnnotate() {
	ctx := context.Background()
	req := dto.AnnotateSessionRequest{}

	_, err := suite.service.AnnotateSession(ctx, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "AnnotateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestAnnotateSession_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	notes := "evening recount confirmed"
	req := dto.AnnotateSessionRequest{Notes: &notes}

	suite.mockSessionRepo.On("AnnotateSession", ctx, sessionID, &notes, (*string)(nil), suite.userID, mock.AnythingOfType("time.Time")).
		Return(&domain.CashSession{SessionID: sessionID, Status: domain.SessionClosed, Notes: notes}, nil).Once()

	annotated, err := suite.service.AnnotateSession(ctx, sessionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(notes, annotated.Notes)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestListSessions_InvalidStatus() {
	ctx := context.Background()
	params := dto.ListSessionsParams{Status: "PAUSED", Limit: 20}

	_, err := suite.service.ListSessions(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "ListSessions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestListSessions_Success() {
	ctx := context.Background()
	params := dto.ListSessionsParams{RegisterID: suite.registerID, Limit: 10}

	suite.mockSessionRepo.On("ListSessions", ctx, mock.MatchedBy(func(f portsrepo.ListSessionsFilter) bool {
		return f.RegisterID != nil && *f.RegisterID == suite.registerID && f.Status == nil
	}), 10, (*string)(nil)).Return([]domain.CashSession{
		{SessionID: uuid.NewString(), RegisterID: suite.registerID, SessionNumber: 2, Status: domain.SessionOpen},
	}, nil, nil).Once()

	res, err := suite.service.ListSessions(ctx, params)

	suite.Require().NoError(err)
	suite.Len(res.Sessions, 1)
	suite.Nil(res.NextToken)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
