package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SVG рисует диаграмму через gonum/plot, с осями в координатах рамки
func SVG(w io.Writer, sites []voronoi.Point, d *voronoi.Diagram, box voronoi.BoundingBox) error {
	if err := box.Validate(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Диаграмма Вороного (Форчун)"
	p.X.Label.Text = "Ширина"
	p.Y.Label.Text = "Высота"
	p.X.Min, p.X.Max = box.XMin, box.XMax
	p.Y.Min, p.Y.Max = box.YMin, box.YMax

	for _, seg := range d.Segments {
		line, err := plotter.NewLine(plotter.XYs{{X: seg.Va.X, Y: seg.Va.Y}, {X: seg.Vb.X, Y: seg.Vb.Y}})
		if err != nil {
			return fmt.Errorf("segment %v: %w", seg, err)
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = color.RGBA{R: 51, G: 51, B: 153, A: 255}
		p.Add(line)
	}

	if len(sites) > 0 {
		xys := make(plotter.XYs, len(sites))
		for i, site := range sites {
			xys[i].X = site.X
			xys[i].Y = site.Y
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("could not create scatter: %w", err)
		}
		scatter.GlyphStyle.Color = color.RGBA{R: 25, G: 153, B: 25, A: 255}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
	}

	// держим пропорции рамки, длинная сторона 15 см
	width, height := 15*vg.Centimeter, 15*vg.Centimeter
	if box.Width() > box.Height() {
		height = vg.Length(float64(width) * box.Height() / box.Width())
	} else {
		width = vg.Length(float64(height) * box.Width() / box.Height())
	}

	wt, err := p.WriterTo(width, height, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
