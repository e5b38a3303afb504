package render

import (
	"fmt"
	"io"
	"math"

	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"github.com/gogpu/gg"
)

const (
	siteRadius = 3.0
	edgeWidth  = 1.5
)

// PNG рисует диаграмму в картинку размером с рамку (1 единица = 1 пиксель).
// Ось Y переворачивается: у картинки начало координат сверху.
func PNG(w io.Writer, sites []voronoi.Point, d *voronoi.Diagram, box voronoi.BoundingBox) error {
	if err := box.Validate(); err != nil {
		return err
	}
	width := int(math.Ceil(box.Width()))
	height := int(math.Ceil(box.Height()))

	dc := gg.NewContext(width, height)
	defer dc.Close()

	toImage := func(p voronoi.Point) (float64, float64) {
		return p.X - box.XMin, box.YMax - p.Y
	}

	dc.ClearWithColor(gg.White)

	dc.SetRGB(0.2, 0.2, 0.6)
	dc.SetLineWidth(edgeWidth)
	for _, seg := range d.Segments {
		x1, y1 := toImage(seg.Va)
		x2, y2 := toImage(seg.Vb)
		dc.DrawLine(x1, y1, x2, y2)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke segment %v: %w", seg, err)
		}
	}

	dc.SetRGB(0.1, 0.6, 0.1)
	for _, site := range sites {
		x, y := toImage(site)
		dc.DrawCircle(x, y, siteRadius)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill site %v: %w", site, err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
