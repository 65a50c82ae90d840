package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

// DashboardSignals is the browser-side state of the page. The selection part
// is owned by the filter controls; the rest is patched after every render.
type DashboardSignals struct {
	Cities        []string             `json:"cities"`
	CustomerTypes []string             `json:"customerTypes"`
	Genders       []string             `json:"genders"`
	Start         string               `json:"start"`
	End           string               `json:"end"`
	Charts        []models.ChartConfig `json:"charts"`
	Empty         bool                 `json:"empty"`
	RowCount      int                  `json:"rowCount"`
}

// renderSignals is the subset of DashboardSignals the server patches.
type renderSignals struct {
	Charts   []models.ChartConfig `json:"charts"`
	Empty    bool                 `json:"empty"`
	RowCount int                  `json:"rowCount"`
}

func newRenderSignals(vm models.ViewModel) renderSignals {
	charts := vm.Charts
	if charts == nil {
		charts = []models.ChartConfig{}
	}
	return renderSignals{Charts: charts, Empty: vm.Empty, RowCount: vm.RowCount}
}

// SignalsFor builds the initial page signals for a rendered view.
func SignalsFor(vm models.ViewModel) DashboardSignals {
	rs := newRenderSignals(vm)
	return DashboardSignals{
		Cities:        nonNil(vm.Selection.Cities),
		CustomerTypes: nonNil(vm.Selection.CustomerTypes),
		Genders:       nonNil(vm.Selection.Genders),
		Start:         vm.Selection.Start.Format(models.DateLayout),
		End:           vm.Selection.End.Format(models.DateLayout),
		Charts:        rs.Charts,
		Empty:         rs.Empty,
		RowCount:      rs.RowCount,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleDashboard re-renders for the selection carried in the request
// signals. It patches the #kpis block and the chart signals.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var in SelectionInput
	if err := datastar.ReadSignals(r, &in); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "Invalid signals"), observability.GetRequestID(r.Context()))
		return
	}

	var vm models.ViewModel
	sel, err := in.Resolve(h.analytics.Options())
	if err != nil {
		// Invalid input replaces the figures with the validation message.
		h.logger.Warn("invalid selection",
			append(observability.ContextAttrs(r.Context()), "error", err)...,
		)
		vm = models.ViewModel{Options: h.analytics.Options(), Empty: true, Notice: errors.As(err).Message}
	} else {
		vm = h.analytics.Render(r.Context(), sel)
	}

	sse := datastar.NewSSE(w, r)
	if err := h.patch(r.Context(), sse, vm); err != nil {
		h.logger.Error("patch dashboard",
			append(observability.ContextAttrs(r.Context()), "error", err)...,
		)
	}
}

func (h *SSEHandlers) patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, vm models.ViewModel) error {
	var buf strings.Builder
	if err := templates.KPIs(vm).Render(ctx, &buf); err != nil {
		return fmt.Errorf("render kpis: %w", err)
	}
	if err := sse.PatchElements(buf.String()); err != nil {
		return fmt.Errorf("patch kpis: %w", err)
	}

	signals, err := json.Marshal(newRenderSignals(vm))
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}
	if err := sse.PatchSignals(signals); err != nil {
		return fmt.Errorf("patch signals: %w", err)
	}
	return nil
}

// DashboardPage serves the full page for the default selection.
func DashboardPage(analytics *services.Analytics, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := analytics.Render(r.Context(), analytics.DefaultSelection())

		signals, err := json.Marshal(SignalsFor(vm))
		if err != nil {
			errors.WriteError(w, logger, errors.InternalWrap(err, "Failed to encode page state"), observability.GetRequestID(r.Context()))
			return
		}

		var buf strings.Builder
		page := templates.Page{View: vm, Signals: string(signals)}
		if err := templates.Dashboard(page).Render(r.Context(), &buf); err != nil {
			errors.WriteError(w, logger, errors.InternalWrap(err, "Failed to render page"), observability.GetRequestID(r.Context()))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		fmt.Fprint(w, buf.String())
	}
}
