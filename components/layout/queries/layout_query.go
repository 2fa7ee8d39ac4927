package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

type layoutService interface {
	ConfigureLayout(ctx context.Context, viewer layout.ViewerContext) ([]layout.WidgetPreference, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[layout.ViewerContext, []layout.WidgetPreference] = (*LayoutQuery)(nil)

// Query resolves the working layout for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer layout.ViewerContext) ([]layout.WidgetPreference, error) {
	return q.service.ConfigureLayout(ctx, viewer)
}
