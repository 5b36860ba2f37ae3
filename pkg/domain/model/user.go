package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// User holds display identity for a slot owner. Credentials live in the
// upstream authenticator, not here.
type User struct {
	ID        types.UserID
	Name      string
	Email     string `masq:"secret"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the structural invariants of a user
func (x *User) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if x.Name == "" {
		return goerr.New("user name is required", goerr.V("id", x.ID))
	}
	return nil
}
