// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var errNoResiduals = errors.New("no residual history to plot")

// plotResiduals draws hist on a log-scaled y axis and saves it to path;
// the extension selects the format. Zero residuals are drawn at the
// smallest positive value of the history.
func plotResiduals(path, title string, hist []float64) error {
	if len(hist) == 0 {
		return errNoResiduals
	}
	floor := math.Inf(1)
	for _, r := range hist {
		if r > 0 && r < floor {
			floor = r
		}
	}
	if math.IsInf(floor, 1) {
		floor = 1
	}

	pts := make(plotter.XYs, len(hist))
	for i, r := range hist {
		pts[i].X = float64(i)
		pts[i].Y = math.Max(r, floor)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "residual norm"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
