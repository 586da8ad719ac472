package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/core/services"
	"github.com/SscSPs/kontrollavgift/internal/dto"
	"github.com/SscSPs/kontrollavgift/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Email: "  Anna@Example.com ", Name: "Anna", Password: "correct horse"}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		_, err := uuid.Parse(u.UserID)
		return err == nil &&
			u.Email == "anna@example.com" &&
			u.Name == "Anna" &&
			u.CreatedBy == "kactl" &&
			utils.CheckPasswordHash("correct horse", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("anna@example.com", user.Email)
	suite.NotEqual("correct horse", user.PasswordHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_Validation() {
	ctx := context.Background()
	tests := map[string]dto.CreateUserRequest{
		"bad email":      {Email: "anna", Name: "Anna", Password: "correct horse"},
		"missing name":   {Email: "anna@example.com", Password: "correct horse"},
		"short password": {Email: "anna@example.com", Name: "Anna", Password: "short"},
	}
	for name, req := range tests {
		_, err := suite.service.CreateUser(ctx, req)
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Email: "anna@example.com", Name: "Anna", Password: "correct horse"})

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestGetUserByEmail() {
	ctx := context.Background()
	expected := &domain.User{UserID: "u1", Email: "anna@example.com"}
	suite.mockRepo.On("FindUserByEmail", ctx, "anna@example.com").Return(expected, nil).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByEmail(ctx, "anna@example.com")
	suite.Require().NoError(err)
	suite.Equal(expected, user)

	_, err = suite.service.GetUserByEmail(ctx, "nobody@example.com")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
