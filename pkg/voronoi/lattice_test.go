package voronoi_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/0x0FACED/go-voronoi/pkg/stations"
	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"github.com/tdewolff/test"
)

var box1000 = voronoi.NewBoundingBox(0, 1000, 0, 1000)

// bisectorError - насколько середина отрезка дальше от второго ближайшего сайта, чем от первого
func bisectorError(seg voronoi.Segment, sites []voronoi.Point) (float64, float64) {
	mid := voronoi.Point{X: (seg.Va.X + seg.Vb.X) / 2, Y: (seg.Va.Y + seg.Vb.Y) / 2}
	d0, d1 := math.Inf(1), math.Inf(1)
	for _, s := range sites {
		d := math.Hypot(mid.X-s.X, mid.Y-s.Y)
		if d < d0 {
			d0, d1 = d, d0
		} else if d < d1 {
			d1 = d
		}
	}
	return d1 - d0, d0
}

func checkDiagram(t *testing.T, sites []voronoi.Point, box voronoi.BoundingBox) *voronoi.Diagram {
	t.Helper()
	d, err := voronoi.CreateDiagram(sites, box, voronoi.WithInvariantChecks())
	test.Error(t, err)
	test.T(t, d.Stats.FinishedHalves, 2*d.Stats.CircleEvents)
	test.T(t, d.Stats.DroppedCircles, 0)
	for _, seg := range d.Segments {
		test.That(t, box.Contains(seg.Va, 1e-6) && box.Contains(seg.Vb, 1e-6), seg, "outside the box")
		diff, d0 := bisectorError(seg, sites)
		test.That(t, diff < 1e-6*math.Max(1, d0), "edge", seg, "is not on a bisector, off by", diff)
	}
	return d
}

// lattice - узлы сетки с шагом step внутри рамки 1000x1000
func lattice(step int) []voronoi.Point {
	var sites []voronoi.Point
	for y := step; y < 1000; y += step {
		for x := step; x < 1000; x += step {
			sites = append(sites, voronoi.Point{X: float64(x), Y: float64(y)})
		}
	}
	return sites
}

func TestLatticeFull(t *testing.T) {
	for _, step := range []int{500, 250, 200, 100} {
		t.Run(fmt.Sprint(step), func(t *testing.T) {
			sites := lattice(step)
			d := checkDiagram(t, sites, box1000)

			// n-1 вертикальных и n-1 горизонтальных прямых через всю рамку
			n := 1000/step - 1
			var length float64
			for _, seg := range d.Segments {
				length += seg.Length()
			}
			test.FloatDiff(t, length, float64(2*(n-1)*1000), 1e-6)
		})
	}
}

func TestLatticeSubsets(t *testing.T) {
	all := lattice(100)
	for seed := int64(1); seed <= 40; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		n := 3 + rnd.Intn(40)
		sites := make([]voronoi.Point, 0, n)
		for _, i := range rnd.Perm(len(all))[:n] {
			sites = append(sites, all[i])
		}
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			checkDiagram(t, sites, box1000)
		})
	}
}

func TestLatticeTopRow(t *testing.T) {
	var tts = []struct {
		name  string
		sites []voronoi.Point
	}{
		{"vertex above the row", []voronoi.Point{{X: 100, Y: 900}, {X: 900, Y: 900}, {X: 400, Y: 600}}},
		{"vertex far above the box", []voronoi.Point{{X: 100, Y: 900}, {X: 900, Y: 900}, {X: 500, Y: 899}}},
		{"long top row", []voronoi.Point{
			{X: 100, Y: 900}, {X: 300, Y: 900}, {X: 500, Y: 900}, {X: 700, Y: 900}, {X: 900, Y: 900},
			{X: 200, Y: 700}, {X: 600, Y: 500}, {X: 850, Y: 450},
		}},
		{"rows of equal height", []voronoi.Point{
			{X: 100, Y: 800}, {X: 600, Y: 800}, {X: 300, Y: 500}, {X: 900, Y: 500}, {X: 100, Y: 200}, {X: 500, Y: 200},
		}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			checkDiagram(t, tt.sites, box1000)
		})
	}
}

func TestStationGenerators(t *testing.T) {
	t.Run("grid", func(t *testing.T) {
		for _, n := range []int{4, 12, 16, 20, 100} {
			checkDiagram(t, stations.Grid(n, 1000, 1000), box1000)
		}
	})
	for _, seed := range []int64{1, 2, 3} {
		t.Run(fmt.Sprint("random ", seed), func(t *testing.T) {
			sites := stations.Random(2000, 1000, 1000, seed)
			d := checkDiagram(t, sites, box1000)
			test.T(t, d.Stats.SiteEvents, 2000)
			test.That(t, len(d.Segments) > 2000)
		})
	}
}
