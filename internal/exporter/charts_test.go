package exporter

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrydash/internal/dataprocessing"
	"registrydash/internal/shared/testutil"
	"registrydash/pkg/contracts/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleChartSet(t *testing.T) domain.ChartSet {
	t.Helper()
	set, err := dataprocessing.BuildChartSet(context.Background(), testutil.SampleTable(), domain.DefaultChartLimits())
	require.NoError(t, err)
	return set
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{" svg ", FormatSVG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
	assert.Equal(t, ".svg", FormatSVG.Extension())
}

func TestChartRenderer_RenderEveryKind(t *testing.T) {
	renderer := NewChartRenderer(nil)
	set := sampleChartSet(t)

	for _, kind := range domain.ChartKinds {
		t.Run(string(kind)+"/png", func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderer.Render(&buf, kind, set, FormatPNG))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
		t.Run(string(kind)+"/svg", func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderer.Render(&buf, kind, set, FormatSVG))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestChartRenderer_SingleBar(t *testing.T) {
	renderer := NewChartRenderer(nil)
	set := domain.ChartSet{
		TopCompanies: []domain.CapitalEntry{{Name: "ACME", Capital: 0}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, domain.ChartTopCapital, set, FormatPNG))
	assert.NotZero(t, buf.Len())
}

func TestChartRenderer_EmptyView(t *testing.T) {
	renderer := NewChartRenderer(nil)

	for _, kind := range domain.ChartKinds {
		t.Run(string(kind), func(t *testing.T) {
			var buf bytes.Buffer
			err := renderer.Render(&buf, kind, domain.ChartSet{HistogramEmpty: true}, FormatPNG)
			assert.ErrorIs(t, err, ErrEmptyChart)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestChartRenderer_Errors(t *testing.T) {
	renderer := NewChartRenderer(nil)
	set := sampleChartSet(t)

	var buf bytes.Buffer
	err := renderer.Render(&buf, domain.ChartKind("sankey"), set, FormatPNG)
	assert.ErrorIs(t, err, domain.ErrUnknownChartKind)

	err = renderer.Render(&buf, domain.ChartTypes, set, Format("bmp"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestChartRenderer_BarLayoutFitsCanvas(t *testing.T) {
	renderer := NewChartRenderer(nil)

	for _, n := range []int{1, 10, 15, 40, 400} {
		width, spacing := renderer.barLayout(n)
		assert.GreaterOrEqual(t, width, 2)
		assert.GreaterOrEqual(t, spacing, 1)
		assert.LessOrEqual(t, width, 60)
	}
}
