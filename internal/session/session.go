package session

import (
	"errors"

	"github.com/seedcampus/seed-client/internal/types"
)

// ErrNoSession is returned by Restore when no user has been persisted, or
// when the persisted blob fails signature verification and is treated as
// absent.
var ErrNoSession = errors.New("no saved session")

// Store persists the signed-in user plus the handful of small keys the
// client keeps between runs: the liked-post ids and the last viewed event.
// It is the browser-storage analog; everything else the client holds is a
// request-scoped snapshot and is deliberately not stored here.
type Store interface {
	Restore() (*types.User, error)
	Persist(user *types.User) error
	Clear() error

	LikedPosts() ([]types.ID, error)
	AddLikedPost(id types.ID) error

	CurrentEventID() (types.ID, error)
	SetCurrentEventID(id types.ID) error
}
