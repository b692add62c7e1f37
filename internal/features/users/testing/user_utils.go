package users_testing

import (
	"fmt"
	"time"

	users_dto "teamsync/internal/features/users/dto"
	users_enums "teamsync/internal/features/users/enums"
	users_models "teamsync/internal/features/users/models"
	users_repositories "teamsync/internal/features/users/repositories"
	users_services "teamsync/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser() *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("user-%s@test.com", userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		Name:                 "Test " + userID.String()[:8],
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Status:               users_enums.UserStatusActive,
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func DeactivateTestUser(userID uuid.UUID) {
	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.UpdateUserStatus(userID, users_enums.UserStatusInactive); err != nil {
		panic(err)
	}
}
