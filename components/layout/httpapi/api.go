package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
	"github.com/sitedeck/go-layout/components/layout/commands"
)

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Toggle   gocommand.Commander[commands.ToggleWidgetInput]
	Collapse gocommand.Commander[commands.CollapseWidgetInput]
	Span     gocommand.Commander[commands.CycleSpanInput]
	Reorder  gocommand.Commander[commands.ReorderWidgetsInput]
	Reset    gocommand.Commander[commands.ResetLayoutInput]
	Save     gocommand.Commander[commands.SaveLayoutInput]

	// Validator guards the wholesale save payload. Optional.
	Validator *layout.LayoutValidator
}

func (h *Handlers) HandleToggleWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Toggle.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleCollapseWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.CollapseWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Collapse.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleCycleSpan(w http.ResponseWriter, r *http.Request) {
	var payload commands.CycleSpanInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Span.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Reorder.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResetLayout(w http.ResponseWriter, r *http.Request) {
	var payload commands.ResetLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Reset.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveLayout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Validator != nil {
		if err := h.Validator.Validate(body); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}
	var payload commands.SaveLayoutInput
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Save.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
