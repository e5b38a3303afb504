package voronoi

import (
	"errors"
	"math"
	"testing"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/tdewolff/test"
)

func newTestSweep() *sweepState {
	return newSweepState(&config{log: logger.NewNop()}, box1000)
}

// addSites прогоняет site-события без circle-событий
func addSites(t *testing.T, s *sweepState, sites ...Point) {
	t.Helper()
	for _, p := range sites {
		s.sweepY = p.Y
		test.Error(t, s.handleSite(p))
		test.Error(t, s.beachline.validate(s.sweepY))
	}
}

func arcSites(b *beachline) []Point {
	var sites []Point
	for _, idx := range b.inorder() {
		if b.nodes[idx].kind == arcNode {
			sites = append(sites, b.nodes[idx].arc.Site)
		}
	}
	return sites
}

func TestBeachlineFirstParabola(t *testing.T) {
	b := newBeachline()
	test.That(t, b.empty())
	_, ok := b.arcUnderPoint(Point{0, 0}, 0)
	test.That(t, !ok)

	test.Error(t, b.addFirstParabola(Point{1, 2}))
	idx, ok := b.arcUnderPoint(Point{100, -5}, -5)
	test.That(t, ok)
	test.T(t, b.arc(idx).Site, Point{1, 2})

	var iv *InvariantViolation
	err := b.addFirstParabola(Point{3, 4})
	test.That(t, errors.As(err, &iv), err)
	test.T(t, iv.Op, "addFirstParabola")
}

func TestBeachlineThreeSites(t *testing.T) {
	A, B, C := Point{250, 250}, Point{500, 750}, Point{750, 250}
	s := newTestSweep()
	addSites(t, s, B, A, C)

	b := s.beachline
	test.T(t, arcSites(b), []Point{B, A, B, C, B})
	test.T(t, b.arcCount(), 5)
	test.T(t, len(b.inorder()), 9)
	test.T(t, b.len(), 11)

	// only the middle copy of B collapses
	test.T(t, s.queue.len(), 1)
	e, _ := s.queue.peek()
	test.T(t, e.kind, circleEvent)
	test.T(t, b.arc(e.arc).Site, B)
	test.Float(t, e.center.X, 500)
	test.Float(t, e.center.Y, 437.5)
	test.Float(t, e.y, 125)

	lArc, ok := b.leftArc(e.arc)
	test.That(t, ok)
	test.T(t, b.arc(lArc).Site, A)
	rArc, ok := b.rightArc(e.arc)
	test.That(t, ok)
	test.T(t, b.arc(rArc).Site, C)

	xl, _ := b.leftEdge(e.arc)
	xr, _ := b.rightEdge(e.arc)
	test.T(t, b.breakpoint(xl).Left, A)
	test.T(t, b.breakpoint(xr).Right, C)

	e, _ = s.queue.pop()
	s.sweepY = e.y
	test.Error(t, s.handleCircle(e))
	test.Error(t, b.validate(s.sweepY))
	test.T(t, arcSites(b), []Point{B, A, C, B})
	test.T(t, s.stats.CircleEvents, 1)
	test.T(t, len(s.halves), 2)
	test.T(t, s.queue.len(), 0)

	// the far left and far right arcs have no neighbor on one side
	first := b.minimum(b.root)
	_, ok = b.leftArc(first)
	test.That(t, !ok)
	_, ok = b.leftEdge(first)
	test.That(t, !ok)
	last := b.maximum(b.root)
	_, ok = b.rightArc(last)
	test.That(t, !ok)
}

func TestBeachlineArcUnderPoint(t *testing.T) {
	A, B := Point{250, 500}, Point{750, 500}
	s := newTestSweep()
	addSites(t, s, A, B)

	// the top row is split once, without a copy of A on the right
	test.T(t, arcSites(s.beachline), []Point{A, B})
	x := s.beachline.breakpoint(s.beachline.root)
	test.That(t, x.fromAbove)
	test.T(t, x.Origin, Point{500, 500})
	test.That(t, x.Direction.X == 0 && x.Direction.Y < 0, x.Direction)

	var tts = []struct {
		x    float64
		site Point
	}{
		{0, A},
		{499, A},
		{500, B}, // ties go right
		{999, B},
	}
	for _, tt := range tts {
		idx, ok := s.beachline.arcUnderPoint(Point{tt.x, 400}, 400)
		test.That(t, ok)
		test.T(t, s.beachline.arc(idx).Site, tt.site, tt.x)
	}
}

func TestBeachlineCollinearDoesNotCollapse(t *testing.T) {
	S0, S1, S2 := Point{250, 500}, Point{500, 500}, Point{750, 500}
	s := newTestSweep()
	addSites(t, s, S0, S1, S2)
	test.T(t, arcSites(s.beachline), []Point{S0, S1, S2})
	test.T(t, s.queue.len(), 0)

	// a forced circle event on a collinear triple is dropped
	order := s.beachline.inorder()
	arcIdx := order[2]
	test.T(t, s.beachline.arc(arcIdx).Site, S1)
	test.Error(t, s.handleCircle(&event{kind: circleEvent, arc: arcIdx, y: 500}))
	test.T(t, s.stats.DroppedCircles, 1)
	test.T(t, s.stats.CircleEvents, 0)
	test.T(t, len(s.halves), 0)
	test.Error(t, s.beachline.validate(500))
}

func TestBeachlineTopRowVertexAboveRow(t *testing.T) {
	P, Q, R := Point{100, 900}, Point{900, 900}, Point{400, 600}
	s := newTestSweep()
	addSites(t, s, P, Q, R)

	b := s.beachline
	test.T(t, arcSites(b), []Point{P, R, P, Q})

	// the P-Q bisector comes down from above and meets the P-R one over the row
	test.T(t, s.queue.len(), 1)
	e, _ := s.queue.peek()
	test.T(t, e.kind, circleEvent)
	test.Float(t, e.center.X, 500)
	test.Float(t, e.center.Y, 1000)
	test.Float(t, e.y, 1000-math.Sqrt(170000))

	e, _ = s.queue.pop()
	s.sweepY = e.y
	test.Error(t, s.handleCircle(e))
	test.Error(t, b.validate(s.sweepY))
	test.T(t, arcSites(b), []Point{P, R, Q})
	test.T(t, len(s.halves), 2)
	for _, h := range s.halves {
		test.That(t, h.finished)
		test.That(t, h.seg.Vb.Near(Point{500, 1000}, 1e-9), h.seg)
	}
}

func TestBeachlineDivergingNeighbors(t *testing.T) {
	// after the vertex at (700, 700) the arc of C widens, no second event
	A, B, C := Point{700, 800}, Point{600, 700}, Point{700, 600}
	s := newTestSweep()
	addSites(t, s, A, B, C)
	test.T(t, s.queue.len(), 1)

	e, _ := s.queue.pop()
	test.Float(t, e.center.X, 700)
	test.Float(t, e.center.Y, 700)
	test.Float(t, e.y, 600)
	s.sweepY = e.y
	test.Error(t, s.handleCircle(e))
	test.Error(t, s.beachline.validate(s.sweepY))
	test.T(t, arcSites(s.beachline), []Point{A, B, C, A})
	test.T(t, s.queue.len(), 0)
}

func TestBeachlineEqualNeighbors(t *testing.T) {
	A, B := Point{500, 750}, Point{500, 250}
	s := newTestSweep()
	addSites(t, s, A, B)
	test.T(t, arcSites(s.beachline), []Point{A, B, A})

	mid := s.beachline.inorder()[2]
	test.That(t, !s.beachline.checkCircleEvent(mid, s.queue, s.sweepY))
	test.T(t, s.queue.len(), 0)
}

func TestBeachlineViolations(t *testing.T) {
	s := newTestSweep()
	addSites(t, s, Point{500, 750})
	b := s.beachline
	var iv *InvariantViolation

	bp := newBreakPoint(Point{}, Point{1, 0}, Point{}, Point{}, 0)
	err := b.replaceArc(42, Arc{}, bp, Arc{}, bp, Arc{}, s.queue, 0)
	test.That(t, errors.As(err, &iv), err)
	test.T(t, iv.Op, "replaceArc")
	test.T(t, iv.Node, 42)

	err = b.splitArc(42, Arc{}, bp, Arc{}, s.queue, 0)
	test.That(t, errors.As(err, &iv), err)
	test.T(t, iv.Op, "splitArc")

	// a lone root arc has no neighbors to merge
	err = b.replaceBreakpoint(nilNode, b.root, nilNode, bp, s.queue, 0)
	test.That(t, errors.As(err, &iv), err)
	test.T(t, iv.Op, "replaceBreakpoint")

	err = s.handleCircle(&event{kind: circleEvent, arc: b.root})
	test.That(t, errors.As(err, &iv), err)
	test.T(t, iv.Op, "handleCircle")

	err = s.handleCircle(&event{kind: circleEvent, arc: 99})
	test.That(t, errors.As(err, &iv), err)
	test.That(t, !errors.Is(err, ErrDegenerateGeometry))
}

func TestBeachlineValidateDetectsCorruption(t *testing.T) {
	s := newTestSweep()
	addSites(t, s, Point{500, 750}, Point{250, 250})
	b := s.beachline

	order := b.inorder()
	test.Error(t, b.validate(250))

	b.nodes[order[0]].parent = order[4]
	var iv *InvariantViolation
	err := b.validate(250)
	test.That(t, errors.As(err, &iv), err)
	test.T(t, iv.Op, "validate")
	test.T(t, iv.Node, order[0])
}
