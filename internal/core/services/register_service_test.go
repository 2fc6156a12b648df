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

// --- Mock RegisterRepository ---
type MockRegisterRepository struct {
	mock.Mock
}

// Ensure MockRegisterRepository implements portsrepo.RegisterRepositoryFacade
var _ portsrepo.RegisterRepositoryFacade = (*MockRegisterRepository)(nil)

func (m *MockRegisterRepository) SaveRegister(ctx context.Context, register domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockRegisterRepository) FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

func (m *MockRegisterRepository) ListRegisters(ctx context.Context, includeInactive bool) ([]domain.CashRegister, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashRegister), args.Error(1)
}

func (m *MockRegisterRepository) UpdateRegister(ctx context.Context, register domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockRegisterRepository) DeactivateRegister(ctx context.Context, registerID string, userID string) error {
	args := m.Called(ctx, registerID, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type RegisterServiceTestSuite struct {
	suite.Suite
	mockRegisterRepo *MockRegisterRepository
	service          portssvc.RegisterSvcFacade
	userID           string
}

func (suite *RegisterServiceTestSuite) SetupTest() {
	suite.mockRegisterRepo = new(MockRegisterRepository)
	suite.service = services.NewRegisterService(suite.mockRegisterRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *RegisterServiceTestSuite) TestCreateRegister_Success() {
	ctx := context.Background()
	req := dto.CreateRegisterRequest{
		Name:          "Front Desk",
		InitialAmount: decimal.NewFromInt(100),
		Location:      "Reception",
	}

	suite.mockRegisterRepo.On("SaveRegister", ctx, mock.MatchedBy(func(r domain.CashRegister) bool {
		return r.Name == "Front Desk" &&
			r.InitialAmount.Equal(decimal.NewFromInt(100)) &&
			r.CurrentBalance.Equal(decimal.NewFromInt(100)) &&
			r.IsActive &&
			r.CreatedBy == suite.userID
	})).Return(nil).Once()

	created, err := suite.service.CreateRegister(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.RegisterID)
	suite.True(created.CurrentBalance.Equal(created.InitialAmount))
	suite.mockRegisterRepo.AssertExpectations(suite.T())
}

func (suite *RegisterServiceTestSuite) TestCreateRegister_BlankName() {
	ctx := context.Background()
	req := dto.CreateRegisterRequest{Name: "   ", InitialAmount: decimal.NewFromInt(50)}

	_, err := suite.service.CreateRegister(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRegisterRepo.AssertNotCalled(suite.T(), "SaveRegister", mock.Anything, mock.Anything)
}

func (suite *RegisterServiceTestSuite) TestCreateRegister_NegativeInitialAmount() {
	ctx := context.Background()
	req := dto.CreateRegisterRequest{Name: "Back Office", InitialAmount: decimal.NewFromInt(-10)}

	_, err := suite.service.CreateRegister(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRegisterRepo.AssertNotCalled(suite.T(), "SaveRegister", mock.Anything, mock.Anything)
}

func (suite *RegisterServiceTestSuite) TestCreateRegister_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateRegisterRequest{Name: "Front Desk", InitialAmount: decimal.NewFromInt(100)}

	suite.mockRegisterRepo.On("SaveRegister", ctx, mock.AnythingOfType("domain.CashRegister")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateRegister(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRegisterRepo.AssertExpectations(suite.T())
}

func (suite *RegisterServiceTestSuite) TestUpdateRegister_PartialUpdate() {
	ctx := context.Background()
	registerID := uuid.NewString()
	existing := &domain.CashRegister{
		RegisterID:     registerID,
		Name:           "Front Desk",
		Location:       "Reception",
		InitialAmount:  decimal.NewFromInt(100),
		CurrentBalance: decimal.NewFromInt(340),
		IsActive:       true,
	}
	newLocation := "Reception, ground floor"
	req := dto.UpdateRegisterRequest{Location: &newLocation}

	suite.mockRegisterRepo.On("FindRegisterByID", ctx, registerID).Return(existing, nil).Once()
	suite.mockRegisterRepo.On("UpdateRegister", ctx, mock.MatchedBy(func(r domain.CashRegister) bool {
		// Only the location changes; the balance is untouchable from here.
		return r.Name == "Front Desk" &&
			r.Location == newLocation &&
			r.CurrentBalance.Equal(decimal.NewFromInt(340)) &&
			r.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateRegister(ctx, registerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newLocation, updated.Location)
	suite.mockRegisterRepo.AssertExpectations(suite.T())
}

func (suite *RegisterServiceTestSuite) TestUpdateRegister_EmptyName() {
	ctx := context.Background()
	registerID := uuid.NewString()
	existing := &domain.CashRegister{RegisterID: registerID, Name: "Front Desk", IsActive: true}
	blank := "  "
	req := dto.UpdateRegisterRequest{Name: &blank}

	suite.mockRegisterRepo.On("FindRegisterByID", ctx, registerID).Return(existing, nil).Once()

	_, err := suite.service.UpdateRegister(ctx, registerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRegisterRepo.AssertNotCalled(suite.T(), "UpdateRegister", mock.Anything, mock.Anything)
}

func (suite *RegisterServiceTestSuite) TestDeactivateRegister_OpenSessionBlocks() {
	ctx := context.Background()
	registerID := uuid.NewString()

	suite.mockRegisterRepo.On("DeactivateRegister", ctx, registerID, suite.userID).
		Return(apperrors.ErrHasOpenSession).Once()

	err := suite.service.DeactivateRegister(ctx, registerID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrHasOpenSession)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRegisterRepo.AssertExpectations(suite.T())
}

func TestRegisterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegisterServiceTestSuite))
}
