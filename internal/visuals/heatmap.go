// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package visuals

import (
	"fmt"
	"image/color"
	"math"

	"github.com/internetofwater/housing/internal/correlation"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const Title = "Correlation Matrix"

const (
	// the heatmap itself is square; the color bar sits to its right
	heatmapSide   = 8 * vg.Inch
	colorBarWidth = 1.25 * vg.Inch
	// palette resolution of the diverging color map
	paletteColors = 255
	// cells this strongly correlated get light text
	contrastThreshold = 0.6
)

// matrixGrid adapts a correlation matrix to plotter.GridXYZ.
// Rows are flipped so the first feature is drawn at the top
type matrixGrid struct {
	m correlation.Matrix
}

func (g matrixGrid) Dims() (c, r int) {
	n := g.m.Dim()
	return n, n
}

func (g matrixGrid) Z(c, r int) float64 { return g.m.At(g.row(r), c) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

func (g matrixGrid) row(r int) int { return g.m.Dim() - 1 - r }

// heatmapPlots builds the annotated heatmap and its color bar.
// The color map is pinned to [-1, 1] so zero is always the neutral
// midpoint regardless of the values present in the matrix
func heatmapPlots(m correlation.Matrix) (heat *plot.Plot, bar *plot.Plot, err error) {
	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	grid := matrixGrid{m: m}
	hm := plotter.NewHeatMap(grid, colors.Palette(paletteColors))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}

	annotations, err := cellLabels(grid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to annotate heatmap: %w", err)
	}

	heat = plot.New()
	heat.Title.Text = Title
	heat.Add(hm, annotations)
	heat.X.Tick.Marker = plot.ConstantTicks(featureTicks(m.Names, false))
	heat.Y.Tick.Marker = plot.ConstantTicks(featureTicks(m.Names, true))
	heat.X.Tick.Label.Rotation = math.Pi / 4
	heat.X.Tick.Label.XAlign = draw.XRight
	heat.X.Tick.Label.YAlign = draw.YCenter

	bar = plot.New()
	// a blank title of the same style keeps the bar level with the heatmap
	bar.Title.Text = " "
	bar.Title.TextStyle = heat.Title.TextStyle
	bar.HideX()
	bar.Add(&plotter.ColorBar{ColorMap: colors, Vertical: true})

	return heat, bar, nil
}

func featureTicks(names []string, flipped bool) []plot.Tick {
	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		pos := i
		if flipped {
			pos = len(names) - 1 - i
		}
		ticks[i] = plot.Tick{Value: float64(pos), Label: name}
	}
	return ticks
}

// cellLabels prints each coefficient in the center of its cell
func cellLabels(g matrixGrid) (*plotter.Labels, error) {
	cols, rows := g.Dims()
	xys := make(plotter.XYs, 0, cols*rows)
	text := make([]string, 0, cols*rows)
	values := make([]float64, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := g.Z(c, r)
			xys = append(xys, plotter.XY{X: g.X(c), Y: g.Y(r)})
			text = append(text, formatCoefficient(z))
			values = append(values, z)
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Color = color.Black
		if math.Abs(values[i]) > contrastThreshold {
			labels.TextStyle[i].Color = color.White
		}
	}
	return labels, nil
}

func formatCoefficient(z float64) string {
	if math.IsNaN(z) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", z)
}

// drawHeatmap lays the heatmap and color bar out side by side on c
func drawHeatmap(heat, bar *plot.Plot, c vg.CanvasSizer) {
	dc := draw.New(c)
	width := dc.Max.X - dc.Min.X
	heat.Draw(squareDataArea(heat, draw.Crop(dc, 0, -colorBarWidth, 0, 0)))
	bar.Draw(draw.Crop(dc, width-colorBarWidth, 0, 0, 0))
}

// squareDataArea shrinks c until the area heat plots its data into is
// square, so every cell is square whatever the length of the tick labels.
// Glyph padding can move slightly with the canvas size, hence the passes
func squareDataArea(heat *plot.Plot, c draw.Canvas) draw.Canvas {
	const passes = 3
	for range passes {
		da := heat.DataCanvas(c)
		w, h := da.Max.X-da.Min.X, da.Max.Y-da.Min.Y
		switch {
		case w > h:
			c = draw.Crop(c, 0, h-w, 0, 0)
		case h > w:
			c = draw.Crop(c, 0, 0, 0, w-h)
		default:
			return c
		}
	}
	return c
}
