package exporter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"registrydash/internal/dataprocessing"
	"registrydash/internal/infrastructure"
	"registrydash/pkg/contracts/domain"
)

var (
	// ErrEmptyChart is returned when the requested view has nothing to draw.
	ErrEmptyChart = errors.New("chart has no data")
	// ErrUnsupportedFormat is returned for image formats other than png and svg.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
)

// Format is an image encoding for rendered charts.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts png or svg, case-insensitively. Empty means png.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatPNG):
		return FormatPNG, nil
	case string(FormatSVG):
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the encoding.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

const (
	defaultChartWidth  = 1024
	defaultChartHeight = 512
	maxLabelRunes      = 16
	histogramLabelStep = 5
)

var barColor = drawing.ColorFromHex("1f77b4")

// ChartRenderer draws dashboard views as images.
type ChartRenderer struct {
	Width  int
	Height int
	logger *slog.Logger
}

// NewChartRenderer returns a renderer with the default canvas size.
func NewChartRenderer(logger *slog.Logger) *ChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartRenderer{
		Width:  defaultChartWidth,
		Height: defaultChartHeight,
		logger: infrastructure.WithComponent(logger, "chart_renderer"),
	}
}

// Render writes the view kind of set to w. Legal status is drawn as a pie,
// every other view as a bar chart.
func (r *ChartRenderer) Render(w io.Writer, kind domain.ChartKind, set domain.ChartSet, format Format) error {
	if format != FormatPNG && format != FormatSVG {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var err error
	switch kind {
	case domain.ChartIndustries:
		err = r.renderBars(w, format, kind, countValues(set.TopIndustries), countFormatter)
	case domain.ChartProvinces:
		err = r.renderBars(w, format, kind, countValues(set.Provinces), countFormatter)
	case domain.ChartTypes:
		err = r.renderBars(w, format, kind, countValues(set.Types), countFormatter)
	case domain.ChartCapitalHistogram:
		err = r.renderBars(w, format, kind, histogramValues(set.CapitalBins), countFormatter)
	case domain.ChartTopCapital:
		err = r.renderBars(w, format, kind, capitalValues(set.TopCompanies), currencyFormatter)
	case domain.ChartLegalStatus:
		err = r.renderPie(w, format, kind, set.LegalStatus)
	default:
		return fmt.Errorf("%w %q", domain.ErrUnknownChartKind, kind)
	}
	if err != nil {
		return err
	}

	r.logger.Debug("Chart rendered",
		slog.String("kind", string(kind)),
		slog.String("format", string(format)))
	return nil
}

func (r *ChartRenderer) renderBars(w io.Writer, format Format, kind domain.ChartKind, bars []chart.Value, formatter chart.ValueFormatter) error {
	if len(bars) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyChart, kind)
	}

	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	if top <= 0 {
		top = 1
	}

	barWidth, spacing := r.barLayout(len(bars))
	bc := chart.BarChart{
		Title:      kind.Title(),
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: formatter,
		},
		Bars: bars,
	}

	if err := bc.Render(format.provider(), w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", kind, err)
	}
	return nil
}

func (r *ChartRenderer) renderPie(w io.Writer, format Format, kind domain.ChartKind, counts []domain.CategoryCount) error {
	if len(counts) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyChart, kind)
	}

	values := make([]chart.Value, len(counts))
	for i, c := range counts {
		values[i] = chart.Value{
			Value: float64(c.Count),
			Label: fmt.Sprintf("%s (%d)", truncateLabel(c.Label, maxLabelRunes), c.Count),
		}
	}

	pc := chart.PieChart{
		Title:  kind.Title(),
		Width:  r.Height,
		Height: r.Height,
		Values: values,
	}
	if err := pc.Render(format.provider(), w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", kind, err)
	}
	return nil
}

// barLayout fits n bars into the canvas.
func (r *ChartRenderer) barLayout(n int) (width, spacing int) {
	usable := r.Width - 120
	slot := usable / max(n, 1)
	width = min(max(slot*2/3, 2), 60)
	spacing = max(slot-width, 1)
	return width, spacing
}

func countValues(counts []domain.CategoryCount) []chart.Value {
	out := make([]chart.Value, len(counts))
	for i, c := range counts {
		out[i] = chart.Value{
			Value: float64(c.Count),
			Label: truncateLabel(c.Label, maxLabelRunes),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}
	return out
}

func histogramValues(bins []domain.HistogramBin) []chart.Value {
	out := make([]chart.Value, len(bins))
	for i, b := range bins {
		label := ""
		if i%histogramLabelStep == 0 {
			label = dataprocessing.FormatCurrency(b.Lower)
		}
		out[i] = chart.Value{
			Value: float64(b.Count),
			Label: label,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}
	return out
}

func capitalValues(entries []domain.CapitalEntry) []chart.Value {
	out := make([]chart.Value, len(entries))
	for i, e := range entries {
		out[i] = chart.Value{
			Value: e.Capital,
			Label: truncateLabel(e.Name, maxLabelRunes),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}
	return out
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}

func currencyFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return dataprocessing.FormatCurrency(f)
	}
	return fmt.Sprintf("%v", v)
}
