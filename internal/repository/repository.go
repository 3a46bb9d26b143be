package repository

import (
	"context"

	"github.com/lgsobral/eduhub/internal/model"
)

// Filter is the structural filter applied to a resource scan.
// Zero values mean "no filter": an empty Search matches every title and
// an empty ResourceType matches every type. Interpreting the raw query
// parameters (trimming, validating the enum) is the service's job —
// by the time a Filter reaches a repository it is already clean.
type Filter struct {
	// Search is matched case-insensitively as a substring of the title.
	Search string
	// ResourceType is matched exactly.
	ResourceType model.ResourceType
}

type ListOptions struct {
	Limit  int
	Offset int
}

// ResourceRepository is the persistence contract for resources.
// The SQLite implementation lives in the sqlite subpackage; tests use an
// in-memory mock. List returns rows ordered newest-first with the id as
// a tie-breaker, so an identical filter always yields an identical order.
type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context, filter Filter, opts ListOptions) ([]model.Resource, error)
	Count(ctx context.Context, filter Filter) (int, error)
	Update(ctx context.Context, resource *model.Resource) error
	Delete(ctx context.Context, id string) error
}
