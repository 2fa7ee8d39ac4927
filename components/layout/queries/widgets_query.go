package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

type widgetService interface {
	VisibleWidgets(viewer layout.ViewerContext) []layout.WidgetDescriptor
}

// VisibleWidgetsQuery lists the registry narrowed to the viewer's role.
type VisibleWidgetsQuery struct {
	service widgetService
}

// NewVisibleWidgetsQuery builds the query.
func NewVisibleWidgetsQuery(service widgetService) *VisibleWidgetsQuery {
	return &VisibleWidgetsQuery{service: service}
}

var _ gocommand.Querier[layout.ViewerContext, []layout.WidgetDescriptor] = (*VisibleWidgetsQuery)(nil)

// Query lists widget descriptors visible to the viewer.
func (q *VisibleWidgetsQuery) Query(_ context.Context, viewer layout.ViewerContext) ([]layout.WidgetDescriptor, error) {
	return q.service.VisibleWidgets(viewer), nil
}
