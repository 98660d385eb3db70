// Package tenant carries the authenticated tenant explicitly through every entry point.
package tenant

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/guard"
)

// ErrNotAuthenticated is returned when no tenant could be resolved for the caller.
// It aborts an invocation before any store is read.
var ErrNotAuthenticated = errors.New("not authenticated: no active tenant")

// Context identifies the tenant (business account) an invocation acts for.
// The zero value is an unauthenticated context.
type Context struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// New builds a tenant context for an already authenticated tenant id.
func New(id kernel.UUID) (Context, error) {
	if err := id.Validate(); err != nil {
		return Context{}, errors.Join(ErrNotAuthenticated, err)
	}
	return Context{id: id, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the tenant identifier.
func (c Context) ID() kernel.UUID {
	return c.id
}

// Validate returns ErrNotAuthenticated for a context that was not built with New.
func (c Context) Validate() error {
	return c.guard.Validate(ErrNotAuthenticated)
}
