package app

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"linkstash/internal/model"
	"linkstash/internal/repository"
)

var ErrEmptyName = errors.New("user name is empty")

// AccountService resolves a display name to a user row. There is no
// password: the name is the whole identity.
type AccountService struct {
	userRepo *repository.UserRepository
}

func NewAccountService(userRepo *repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Login adopts the existing user with that name, or creates one on first
// sight. Losing a concurrent-create race falls back to the winner's row, so
// repeated logins with the same name always converge on one user_id.
func (s *AccountService) Login(userName string) (*model.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, ErrEmptyName
	}

	existing, err := s.userRepo.GetByName(userName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := &model.User{
		UserID:   uuid.NewString(),
		UserName: userName,
	}
	if err := s.userRepo.Create(user); err != nil {
		winner, lookupErr := s.userRepo.GetByName(userName)
		if lookupErr == nil && winner != nil {
			return winner, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) GetUserByID(userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(userID)
}
