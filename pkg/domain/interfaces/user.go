package interfaces

import (
	"context"

	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	// Put creates or replaces a user profile
	Put(ctx context.Context, user *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// GetByIDs retrieves users by ID. Missing users are omitted from the
	// result rather than reported as errors.
	GetByIDs(ctx context.Context, ids []types.UserID) (map[types.UserID]*model.User, error)
}
