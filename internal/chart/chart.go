// Package chart renders scatter and line charts as SVG.
package chart

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	width  = 900
	height = 600

	marginLeft   = 80
	marginRight  = 40
	marginTop    = 60
	marginBottom = 70

	tickCount = 5
)

var palette = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd", "#8c564b"}

// Point is one mark on a chart.
type Point struct {
	X float64
	Y float64
}

// Series is a named sequence of points sharing one color.
type Series struct {
	Label  string
	Points []Point
}

// Options configures axis labels and tick formatting.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// XTick/YTick format tick values; nil falls back to %.3g.
	XTick func(float64) string
	YTick func(float64) string

	// YMin/YMax pin the vertical range when YFixed is set (e.g. percentages
	// on [0,1]); otherwise the range comes from the data.
	YFixed bool
	YMin   float64
	YMax   float64
}

// vmap maps one range into another
func vmap(value, low1, high1, low2, high2 float64) float64 {
	if high1 == low1 {
		return (low2 + high2) / 2
	}
	return low2 + (high2-low2)*(value-low1)/(high1-low1)
}

// Scatter renders each series as colored circles.
func Scatter(w io.Writer, opts Options, series []Series) error {
	return render(w, opts, series, false)
}

// Line renders each series as a polyline through its points in order.
func Line(w io.Writer, opts Options, series []Series) error {
	return render(w, opts, series, true)
}

func render(w io.Writer, opts Options, series []Series, asLines bool) error {
	xlo, xhi, ylo, yhi, n := bounds(series)
	if n == 0 {
		return fmt.Errorf("chart %q: no points to plot", opts.Title)
	}
	if opts.YFixed {
		ylo, yhi = opts.YMin, opts.YMax
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white;stroke:none")
	canvas.Gstyle("font-family:Helvetica,sans-serif;font-size:14px")

	drawFrame(canvas, opts, xlo, xhi, ylo, yhi)

	for si, s := range series {
		color := palette[si%len(palette)]
		xs := make([]int, len(s.Points))
		ys := make([]int, len(s.Points))
		for i, p := range s.Points {
			xs[i] = int(vmap(p.X, xlo, xhi, marginLeft, width-marginRight))
			ys[i] = int(vmap(p.Y, ylo, yhi, height-marginBottom, marginTop))
		}

		if asLines {
			canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", color))
		} else {
			for i := range xs {
				canvas.Circle(xs[i], ys[i], 5, fmt.Sprintf("fill:%s;fill-opacity:0.8", color))
			}
		}

		// Legend entry, stacked top-right.
		lx := width - marginRight - 180
		ly := marginTop + 20*si
		canvas.Rect(lx, ly-10, 12, 12, "fill:"+color)
		canvas.Text(lx+18, ly, s.Label, "fill:#333")
	}

	canvas.Text(width/2, marginTop/2, opts.Title, "text-anchor:middle;font-size:130%;fill:#111")
	canvas.Text(width/2, height-15, opts.XLabel, "text-anchor:middle;fill:#333")
	canvas.TranslateRotate(20, height/2, -90)
	canvas.Text(0, 0, opts.YLabel, "text-anchor:middle;fill:#333")
	canvas.Gend()

	canvas.Gend()
	canvas.End()
	return nil
}

func drawFrame(canvas *svg.SVG, opts Options, xlo, xhi, ylo, yhi float64) {
	plotBottom := height - marginBottom
	plotRight := width - marginRight

	canvas.Line(marginLeft, marginTop, marginLeft, plotBottom, "stroke:#888;stroke-width:1")
	canvas.Line(marginLeft, plotBottom, plotRight, plotBottom, "stroke:#888;stroke-width:1")

	xtick := opts.XTick
	if xtick == nil {
		xtick = defaultTick
	}
	ytick := opts.YTick
	if ytick == nil {
		ytick = defaultTick
	}

	for i := 0; i <= tickCount; i++ {
		frac := float64(i) / float64(tickCount)

		xv := xlo + frac*(xhi-xlo)
		xp := int(vmap(xv, xlo, xhi, marginLeft, float64(plotRight)))
		canvas.Line(xp, plotBottom, xp, plotBottom+6, "stroke:#888")
		canvas.Text(xp, plotBottom+24, xtick(xv), "text-anchor:middle;fill:#555;font-size:85%")

		yv := ylo + frac*(yhi-ylo)
		yp := int(vmap(yv, ylo, yhi, float64(plotBottom), marginTop))
		canvas.Line(marginLeft-6, yp, marginLeft, yp, "stroke:#888")
		canvas.Line(marginLeft, yp, plotRight, yp, "stroke:#eee")
		canvas.Text(marginLeft-10, yp+5, ytick(yv), "text-anchor:end;fill:#555;font-size:85%")
	}
}

func bounds(series []Series) (xlo, xhi, ylo, yhi float64, n int) {
	xlo, ylo = math.Inf(1), math.Inf(1)
	xhi, yhi = math.Inf(-1), math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			xlo = math.Min(xlo, p.X)
			xhi = math.Max(xhi, p.X)
			ylo = math.Min(ylo, p.Y)
			yhi = math.Max(yhi, p.Y)
			n++
		}
	}
	return xlo, xhi, ylo, yhi, n
}

func defaultTick(v float64) string {
	return fmt.Sprintf("%.3g", v)
}
