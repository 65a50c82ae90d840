package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

// Analytics serves render passes and exports over one loaded dataset. It is
// safe for concurrent use; the dataset is never modified.
type Analytics struct {
	ds     *dataset.Dataset
	logger *slog.Logger

	renders      atomic.Int64
	emptyRenders atomic.Int64
	exports      atomic.Int64
	exportedRows atomic.Int64
	lastRender   atomic.Int64
}

func NewAnalytics(ds *dataset.Dataset, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	observability.DatasetRows.Set(float64(ds.Len()))
	return &Analytics{
		ds:     ds,
		logger: logger,
	}
}

func (a *Analytics) Dataset() *dataset.Dataset {
	return a.ds
}

func (a *Analytics) Options() models.FilterOptions {
	return a.ds.Options()
}

func (a *Analytics) DefaultSelection() models.Selection {
	return a.ds.DefaultSelection()
}

// Render runs one filter and aggregate pass for sel.
func (a *Analytics) Render(ctx context.Context, sel models.Selection) models.ViewModel {
	ctx, span := observability.StartSpan(ctx, "dashboard.render",
		attribute.Int("selection.cities", len(sel.Cities)),
		attribute.Int("selection.customer_types", len(sel.CustomerTypes)),
		attribute.Int("selection.genders", len(sel.Genders)),
		attribute.String("selection.start", sel.Start.Format(models.DateLayout)),
		attribute.String("selection.end", sel.End.Format(models.DateLayout)),
	)
	defer span.End()

	start := time.Now()
	vm := Render(a.ds, sel)
	elapsed := time.Since(start)

	outcome := "data"
	if vm.Empty {
		outcome = "empty"
		a.emptyRenders.Add(1)
	}
	a.renders.Add(1)
	a.lastRender.Store(time.Now().UnixNano())

	observability.RenderPasses.WithLabelValues(outcome).Inc()
	observability.RenderDuration.Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int("subset.rows", vm.RowCount), attribute.String("outcome", outcome))

	a.logger.DebugContext(ctx, "dashboard rendered",
		append(observability.ContextAttrs(ctx),
			"rows", vm.RowCount,
			"outcome", outcome,
			"duration", elapsed,
		)...,
	)
	return vm
}

// Export writes the rows matching sel to w as CSV and returns how many were
// written. An empty subset writes nothing and returns ErrNoData.
func (a *Analytics) Export(ctx context.Context, w io.Writer, sel models.Selection) (int, error) {
	ctx, span := observability.StartSpan(ctx, "dashboard.export")

	subset := Filter(a.ds, sel)
	if len(subset) == 0 {
		observability.EndSpan(span, ErrNoData)
		return 0, ErrNoData
	}

	if err := WriteCSV(w, subset); err != nil {
		err = fmt.Errorf("export %d rows: %w", len(subset), err)
		observability.EndSpan(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int("export.rows", len(subset)))
	observability.EndSpan(span, nil)

	a.exports.Add(1)
	a.exportedRows.Add(int64(len(subset)))
	observability.ExportedRows.Add(float64(len(subset)))

	a.logger.InfoContext(ctx, "export written",
		append(observability.ContextAttrs(ctx), "rows", len(subset))...,
	)
	return len(subset), nil
}

// Stats reports dataset and usage counters for monitoring.
func (a *Analytics) Stats() map[string]any {
	opts := a.ds.Options()

	stats := map[string]any{
		"source":         a.ds.Source(),
		"record_count":   a.ds.Len(),
		"loaded_at":      a.ds.LoadedAt(),
		"cities":         len(opts.Cities),
		"customer_types": len(opts.CustomerTypes),
		"genders":        len(opts.Genders),
		"min_date":       opts.MinDate.Format(models.DateLayout),
		"max_date":       opts.MaxDate.Format(models.DateLayout),
		"renders":        a.renders.Load(),
		"empty_renders":  a.emptyRenders.Load(),
		"exports":        a.exports.Load(),
		"exported_rows":  a.exportedRows.Load(),
	}
	if ts := a.lastRender.Load(); ts != 0 {
		stats["last_render"] = time.Unix(0, ts).UTC()
	}
	return stats
}
