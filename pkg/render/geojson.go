package render

import (
	"fmt"

	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON - станции как Point, ребра как LineString. Тип объекта в свойстве kind.
func GeoJSON(sites []voronoi.Point, d *voronoi.Diagram) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, site := range sites {
		f := geojson.NewFeature(orb.Point{site.X, site.Y})
		f.Properties["kind"] = "site"
		f.Properties["index"] = i
		fc.Append(f)
	}
	for _, seg := range d.Segments {
		f := geojson.NewFeature(orb.LineString{
			{seg.Va.X, seg.Va.Y},
			{seg.Vb.X, seg.Vb.Y},
		})
		f.Properties["kind"] = "edge"
		fc.Append(f)
	}
	return fc
}

// MarshalGeoJSON - то же, сразу в JSON
func MarshalGeoJSON(sites []voronoi.Point, d *voronoi.Diagram) ([]byte, error) {
	return GeoJSON(sites, d).MarshalJSON()
}

// ParseGeoJSON - станции из FeatureCollection: каждая геометрия Point (и точки
// MultiPoint) становится станцией, остальные геометрии пропускаются.
// Поэтому результат MarshalGeoJSON читается обратно как те же станции.
func ParseGeoJSON(data []byte) ([]voronoi.Point, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voronoi.ErrInvalidInput, err)
	}
	sites := make([]voronoi.Point, 0, len(fc.Features))
	add := func(p orb.Point) {
		sites = append(sites, voronoi.Point{X: p.X(), Y: p.Y()})
	}
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Point:
			add(g)
		case orb.MultiPoint:
			for _, p := range g {
				add(p)
			}
		}
	}
	return sites, nil
}
