package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/sitedeck/go-layout/pkg/activity"
)

// Sink is the go-users activity log surface this hook writes into.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps dashboard activity events onto go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Hook. Events without a verb or a sink are
// dropped silently.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	if strings.TrimSpace(evt.Verb) == "" {
		return nil
	}
	record := types.ActivityRecord{
		ActorID:    parseID(evt.ActorID),
		UserID:     parseID(evt.UserID),
		TenantID:   parseID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       recordData(evt),
	}
	return h.Sink.Log(ctx, record)
}

func recordData(evt activity.Event) map[string]any {
	data := make(map[string]any, len(evt.Metadata)+2)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = evt.Recipients
	}
	return data
}

func parseID(value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return id
}
