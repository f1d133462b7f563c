package users

import "context"

// ErrNotFound is returned when no account exists for the requested id.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// Repo persists recruiter accounts. Upsert is the only write path: accounts
// are created and refreshed from OAuth logins, never edited directly.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
