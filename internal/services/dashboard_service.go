package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"registrydash/internal/config"
	"registrydash/internal/dataprocessing"
	"registrydash/internal/exporter"
	"registrydash/internal/infrastructure"
	"registrydash/pkg/contracts/domain"
)

// DataStatus describes the loaded registry.
type DataStatus struct {
	Loaded        bool      `json:"loaded"`
	Source        string    `json:"source,omitempty"`
	Sheet         string    `json:"sheet,omitempty"`
	Rows          int       `json:"rows"`
	LoadedAt      time.Time `json:"loaded_at,omitempty"`
	LoadDuration  string    `json:"load_duration,omitempty"`
	ParseWarnings int       `json:"parse_warnings"`
}

// Option customizes a DashboardService.
type Option func(*DashboardService)

// WithTracer sets the tracer used for service spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *DashboardService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics sets the instruments the service records to.
func WithMetrics(m *infrastructure.RegistryMetrics) Option {
	return func(s *DashboardService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithStatus records where the table came from.
func WithStatus(status DataStatus) Option {
	return func(s *DashboardService) {
		s.status = status
	}
}

// DashboardService evaluates filter criteria against a registry table loaded
// once at start-up. The table is never modified, so one service is safe for
// concurrent use.
type DashboardService struct {
	table    *domain.Table
	options  domain.FilterOptions
	defaults domain.FilterCriteria
	status   DataStatus

	rowLimit int
	quantile float64
	limits   domain.ChartLimits

	validator *CriteriaValidator
	csv       *exporter.CSVWriter
	renderer  *exporter.ChartRenderer
	tracer    trace.Tracer
	metrics   *infrastructure.RegistryMetrics
	logger    *slog.Logger
}

var (
	noopMetricsOnce sync.Once
	noopMetrics     *infrastructure.RegistryMetrics
)

func defaultMetrics() *infrastructure.RegistryMetrics {
	noopMetricsOnce.Do(func() {
		noopMetrics, _ = infrastructure.CreateRegistryMetrics(noop.NewMeterProvider().Meter(infrastructure.MeterName))
	})
	return noopMetrics
}

// NewDashboardService wraps an already normalized table.
func NewDashboardService(table *domain.Table, cfg config.DataConfig, logger *slog.Logger, opts ...Option) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if table == nil {
		table = domain.NewTable(nil, nil)
	}

	s := &DashboardService{
		table:     table,
		rowLimit:  cfg.RowLimit,
		quantile:  cfg.CapitalQuantile,
		limits:    cfg.ChartLimits(),
		validator: NewCriteriaValidator(),
		csv:       exporter.NewCSVWriter(logger),
		renderer:  exporter.NewChartRenderer(logger),
		tracer:    otel.Tracer(infrastructure.MeterName),
		metrics:   defaultMetrics(),
		logger:    infrastructure.WithComponent(logger, "dashboard_service"),
		status:    DataStatus{Loaded: true, Rows: table.Len()},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rowLimit <= 0 {
		s.rowLimit = config.DefaultRowLimit
	}
	if s.quantile <= 0 || s.quantile > 1 {
		s.quantile = config.DefaultCapitalQuantile
	}
	s.limits = withDefaultLimits(s.limits)
	s.status.Rows = table.Len()

	s.options = dataprocessing.BuildFilterOptions(table, nil, s.quantile)
	s.defaults = dataprocessing.DefaultCriteria(s.options)

	s.logger.Info("DashboardService initialized",
		slog.Int("rows", table.Len()),
		slog.Int("row_limit", s.rowLimit),
		slog.Float64("capital_quantile", s.quantile))

	return s
}

// LoadDashboardService reads the registry named by cfg and wraps it. Load
// failures are returned unchanged so callers can report them.
func LoadDashboardService(ctx context.Context, cfg config.DataConfig, logger *slog.Logger, opts ...Option) (*DashboardService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	scratch := &DashboardService{tracer: otel.Tracer(infrastructure.MeterName), metrics: defaultMetrics()}
	for _, opt := range opts {
		opt(scratch)
	}

	ctx, span := scratch.tracer.Start(ctx, "registry.load",
		trace.WithAttributes(attribute.String("registry.source", cfg.File)))
	defer span.End()

	start := time.Now()
	loader := dataprocessing.NewLoader(logger)
	table, report, err := loader.LoadTable(ctx, cfg.File, dataprocessing.LoadOptions{Sheet: cfg.Sheet})
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	elapsed := time.Since(start)

	scratch.metrics.LoadDuration.Record(ctx, elapsed.Seconds())
	scratch.metrics.RecordsLoaded.Add(ctx, int64(table.Len()))
	scratch.metrics.ParseWarnings.Add(ctx, int64(report.ParseWarnings()))
	span.SetAttributes(attribute.Int("registry.rows", table.Len()))

	status := DataStatus{
		Loaded:        true,
		Source:        cfg.File,
		Sheet:         cfg.Sheet,
		LoadedAt:      time.Now(),
		LoadDuration:  elapsed.String(),
		ParseWarnings: report.ParseWarnings(),
	}
	return NewDashboardService(table, cfg, logger, append(opts, WithStatus(status))...), nil
}

// Table returns the full registry.
func (s *DashboardService) Table() *domain.Table {
	return s.table
}

// Status describes the loaded registry.
func (s *DashboardService) Status() DataStatus {
	return s.status
}

// Options lists selectable values. Provinces are narrowed to regions when any
// are given.
func (s *DashboardService) Options(ctx context.Context, regions []string) (domain.FilterOptions, error) {
	if err := s.ready(ctx); err != nil {
		return domain.FilterOptions{}, err
	}
	if len(regions) == 0 {
		return s.options, nil
	}
	opts := s.options
	opts.Provinces = dataprocessing.ProvinceOptionsForRegions(s.table, regions)
	return opts, nil
}

// DefaultCriteria selects every option with the full capital and year spans.
func (s *DashboardService) DefaultCriteria() domain.FilterCriteria {
	return s.defaults
}

// Filter validates c, resolves the capital ceiling and returns the matching records.
func (s *DashboardService) Filter(ctx context.Context, c domain.FilterCriteria) (*domain.Table, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(c, domain.Page{}); err != nil {
		return nil, err
	}
	return s.filter(ctx, c), nil
}

func (s *DashboardService) filter(ctx context.Context, c domain.FilterCriteria) *domain.Table {
	ctx, span := s.tracer.Start(ctx, "registry.filter")
	defer span.End()

	resolved := dataprocessing.ResolveCapitalCeiling(c, s.options.Capital)
	filtered := dataprocessing.ApplyFilters(s.table, resolved)

	s.metrics.FilterEvaluations.Add(ctx, 1)
	s.metrics.FilteredRows.Record(ctx, int64(filtered.Len()))
	if filtered.IsEmpty() {
		s.metrics.EmptyResults.Add(ctx, 1)
	}
	span.SetAttributes(
		attribute.Int("registry.filtered_rows", filtered.Len()),
		attribute.Int("registry.total_rows", s.table.Len()),
	)
	return filtered
}

// Evaluate filters the registry and summarizes the result. An empty result
// carries only the informational message.
func (s *DashboardService) Evaluate(ctx context.Context, c domain.FilterCriteria, page domain.Page) (*domain.Dashboard, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(c, page); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "registry.evaluate")
	defer span.End()

	filtered := s.filter(ctx, c)
	if filtered.IsEmpty() {
		s.logger.DebugContext(ctx, "Evaluate: no records match")
		return &domain.Dashboard{
			Empty:      true,
			Message:    domain.EmptyResultMessage,
			RecordPage: domain.NewRecordPage(filtered, s.pageLimit(page)),
		}, nil
	}

	metrics := dataprocessing.ComputeMetrics(filtered, s.table)
	charts, err := dataprocessing.BuildChartSet(ctx, filtered, s.limits)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to build charts: %w", err)
	}

	d := &domain.Dashboard{
		Metrics:    &metrics,
		Charts:     &charts,
		RecordPage: domain.NewRecordPage(filtered, s.pageLimit(page)),
	}
	if charts.HistogramEmpty {
		d.Message = domain.NoCapitalMessage
	}

	s.logger.DebugContext(ctx, "Evaluate: completed",
		slog.Int("filtered", filtered.Len()),
		slog.Int("returned", d.RowCount))
	return d, nil
}

// Records returns the filtered row page without metrics or charts.
func (s *DashboardService) Records(ctx context.Context, c domain.FilterCriteria, page domain.Page) (domain.RecordPage, error) {
	if err := s.ready(ctx); err != nil {
		return domain.RecordPage{}, err
	}
	if err := s.validator.Validate(c, page); err != nil {
		return domain.RecordPage{}, err
	}
	return domain.NewRecordPage(s.filter(ctx, c), s.pageLimit(page)), nil
}

// ExportCSV writes every filtered record to w and returns how many were written.
func (s *DashboardService) ExportCSV(ctx context.Context, c domain.FilterCriteria, w io.Writer, opts exporter.WriteOptions) (int, error) {
	filtered, err := s.Filter(ctx, c)
	if err != nil {
		return 0, err
	}

	ctx, span := s.tracer.Start(ctx, "registry.export_csv")
	defer span.End()

	if err := s.csv.WriteTable(w, filtered, opts); err != nil {
		infrastructure.RecordError(ctx, err)
		return 0, fmt.Errorf("failed to export csv: %w", err)
	}
	s.metrics.ExportsTotal.Add(ctx, 1)
	return filtered.Len(), nil
}

// RenderChart draws one view of the filtered registry. Nothing is written to
// w unless rendering succeeds.
func (s *DashboardService) RenderChart(ctx context.Context, c domain.FilterCriteria, kind domain.ChartKind, format exporter.Format, w io.Writer) error {
	if _, err := domain.ParseChartKind(string(kind)); err != nil {
		return err
	}
	filtered, err := s.Filter(ctx, c)
	if err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, "registry.render_chart",
		trace.WithAttributes(attribute.String("chart.kind", string(kind)), attribute.String("chart.format", string(format))))
	defer span.End()

	charts, err := dataprocessing.BuildChartSet(ctx, filtered, s.limits)
	if err != nil {
		return fmt.Errorf("failed to build charts: %w", err)
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, kind, charts, format); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	s.metrics.ChartRenders.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
	return nil
}

// RenderChartFiles writes every non-empty view into dir and returns the paths
// written. Empty views are skipped.
func (s *DashboardService) RenderChartFiles(ctx context.Context, c domain.FilterCriteria, dir string, format exporter.Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	var written []string
	for _, kind := range domain.ChartKinds {
		var buf bytes.Buffer
		err := s.RenderChart(ctx, c, kind, format, &buf)
		if errors.Is(err, ErrEmptyChart) {
			s.logger.WarnContext(ctx, "Skipping empty chart", slog.String("kind", string(kind)))
			continue
		}
		if err != nil {
			return written, err
		}

		path := filepath.Join(dir, string(kind)+format.Extension())
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return slices.Clip(written), nil
}

// withDefaultLimits replaces every unset chart size with the standard one.
func withDefaultLimits(l domain.ChartLimits) domain.ChartLimits {
	d := domain.DefaultChartLimits()
	if l.TopIndustries <= 0 {
		l.TopIndustries = d.TopIndustries
	}
	if l.TopProvinces <= 0 {
		l.TopProvinces = d.TopProvinces
	}
	if l.TopCompanies <= 0 {
		l.TopCompanies = d.TopCompanies
	}
	if l.HistogramBins <= 0 {
		l.HistogramBins = d.HistogramBins
	}
	return l
}

func (s *DashboardService) pageLimit(p domain.Page) int {
	switch {
	case p.ShowAll:
		return 0
	case p.Limit > 0:
		return p.Limit
	default:
		return s.rowLimit
	}
}

func (s *DashboardService) ready(ctx context.Context) error {
	if s == nil || s.table == nil {
		return ErrNotLoaded
	}
	return ctx.Err()
}
