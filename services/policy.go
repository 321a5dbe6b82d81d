package services

import (
	"errors"

	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

// Actor identifies the authenticated principal on whose behalf an operation
// runs. Both surfaces (JSON API and HTML pages) resolve their credentials to
// an Actor before calling the service layer, so every role and ownership
// rule lives here exactly once.
type Actor struct {
	ID   uint
	Role models.UserRole
}

// requireRole short-circuits with AccessDenied unless the actor holds one of
// the given roles. Called at the top of every role-gated operation, before
// any data access.
func requireRole(actor Actor, roles ...models.UserRole) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return apperr.AccessDenied()
}

// requireOwnerOrAdmin gates handyman-scoped resources: the owner may act on
// their own rows, admins on anything.
func requireOwnerOrAdmin(actor Actor, ownerID uint) error {
	if actor.Role == models.RoleAdmin || actor.ID == ownerID {
		return nil
	}
	return apperr.AccessDenied()
}

// wrapDBError converts gorm's not-found sentinel into the NotFound kind and
// everything else into an opaque persistence fault.
func wrapDBError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what)
	}
	return apperr.Persistence(err)
}
