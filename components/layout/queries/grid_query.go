package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

type gridService interface {
	Grid(ctx context.Context, viewer layout.ViewerContext) (layout.GridModel, error)
}

// GridQuery resolves the full render model for a viewer, including provider
// data for expanded widgets.
type GridQuery struct {
	service gridService
}

// NewGridQuery builds the query.
func NewGridQuery(service gridService) *GridQuery {
	return &GridQuery{service: service}
}

var _ gocommand.Querier[layout.ViewerContext, layout.GridModel] = (*GridQuery)(nil)

// Query resolves the grid for the viewer.
func (q *GridQuery) Query(ctx context.Context, viewer layout.ViewerContext) (layout.GridModel, error) {
	return q.service.Grid(ctx, viewer)
}
