package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// UserUseCase manages display profiles. Authentication happens upstream;
// this only stores what listings show next to a slot or request.
type UserUseCase struct {
	repo interfaces.Repository
}

func NewUserUseCase(repo interfaces.Repository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// PutProfile creates or replaces the caller's display profile
func (uc *UserUseCase) PutProfile(ctx context.Context, userID types.UserID, name, email string) (*model.User, error) {
	user := &model.User{
		ID:    userID,
		Name:  name,
		Email: email,
	}
	if err := user.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid profile", goerr.V("cause", err))
	}

	stored, err := uc.repo.User().Put(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store user profile", goerr.V("id", userID))
	}
	return stored, nil
}

// GetProfile returns the user's display profile
func (uc *UserUseCase) GetProfile(ctx context.Context, userID types.UserID) (*model.User, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid user", goerr.V("cause", err))
	}

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "no such user", goerr.V("id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get user profile", goerr.V("id", userID))
	}
	return user, nil
}
