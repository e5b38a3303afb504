package voronoi

import (
	"math"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"go.uber.org/zap"
)

// halfEdge - половина ребра, нарисованная одной точкой излома.
// finished - половина закончилась в вершине Вороного (circle-событие).
type halfEdge struct {
	edge     int
	seg      Segment
	finished bool
}

// Состояние прямой сканирования. Принадлежит одному вызову CreateDiagram.
type sweepState struct {
	queue     *eventQueue
	beachline *beachline
	sweepY    float64
	box       BoundingBox

	halves   []halfEdge
	nextEdge int

	stats  Stats
	checks bool
	log    *logger.ZapLogger
}

func newSweepState(cfg *config, box BoundingBox) *sweepState {
	return &sweepState{
		queue:     newEventQueue(),
		beachline: newBeachline(),
		box:       box,
		checks:    cfg.checks,
		log:       cfg.log,
	}
}

func (s *sweepState) newEdge() int {
	s.nextEdge++
	return s.nextEdge - 1
}

// run обрабатывает события, пока очередь не опустеет
func (s *sweepState) run() error {
	var counter int
	for {
		e, ok := s.queue.pop()
		if !ok {
			return nil
		}
		if e.kind == siteEvent {
			// вершина на высоте сайта (с точностью до допуска) обрабатывается первой
			next, ok := s.queue.peek()
			if ok && next.kind == circleEvent && next.y >= e.y-sweepTolerance(e.y) {
				s.queue.pop()
				s.queue.pushSite(e.site)
				e = next
			}
		}
		s.sweepY = e.y
		s.log.Debug("[f-for] Текущая итерация", zap.Int("c", counter), zap.Stringer("kind", e.kind),
			zap.Float64("sweepY", s.sweepY), zap.Int("queue", s.queue.len()))
		counter++

		var err error
		if e.kind == siteEvent {
			err = s.handleSite(e.site)
		} else {
			err = s.handleCircle(e)
		}
		if err == nil && s.checks {
			err = s.beachline.validate(s.sweepY)
		}
		if err != nil {
			s.log.Error("[f-for] Пляжная линия повреждена", zap.Error(err), zap.Strings("beachline", s.beachline.describe()))
			return err
		}
	}
}

func (s *sweepState) handleSite(site Point) error {
	s.stats.SiteEvents++
	if s.beachline.empty() {
		s.log.Debug("[f-for-site] Первая парабола", zap.Stringer("site", site))
		return s.beachline.addFirstParabola(site)
	}

	arcIdx, ok := s.beachline.arcUnderPoint(site, s.sweepY)
	if !ok {
		return violation("handleSite", s.beachline.root, "no arc above %v", site)
	}
	if s.queue.removeCircle(arcIdx) {
		s.log.Debug("[f-for-site] Ложное circle-событие удалено", zap.Int("arc", arcIdx))
	}

	old := s.beachline.arc(arcIdx).Site
	origin := pointOnArcAtX(old, s.sweepY, site.X)
	edge := s.newEdge()

	if old.Y == site.Y {
		// верхний ряд: дуга old - вертикальный луч, делим ее на две без копии справа
		left, right := old, site
		if site.X < old.X {
			left, right = site, old
		}
		x := newBreakPoint(origin, normalVector(left.Sub(right)), left, right, edge)
		x.fromAbove = true

		s.log.Debug("[f-for-site] Сайт на высоте дуги", zap.Stringer("site", site), zap.Int("arc", arcIdx),
			zap.Stringer("arc-site", old), zap.Stringer("origin", origin), zap.Int("edge", edge))

		return s.beachline.splitArc(arcIdx, Arc{Site: left}, x, Arc{Site: right}, s.queue, s.sweepY)
	}

	xl := newBreakPoint(origin, normalVector(old.Sub(site)), old, site, edge)
	xr := newBreakPoint(origin, normalVector(site.Sub(old)), site, old, edge)

	s.log.Debug("[f-for-site] Делим дугу", zap.Stringer("site", site), zap.Int("arc", arcIdx),
		zap.Stringer("arc-site", old), zap.Stringer("origin", origin), zap.Int("edge", edge))

	return s.beachline.replaceArc(arcIdx, Arc{Site: old}, xl, Arc{Site: site}, xr, Arc{Site: old}, s.queue, s.sweepY)
}

func (s *sweepState) handleCircle(e *event) error {
	const op = "handleCircle"
	b := s.beachline
	arcIdx := e.arc

	if !b.isArc(arcIdx) {
		return violation(op, arcIdx, "circle event for a node that is not a live arc")
	}
	xl, ok := b.leftEdge(arcIdx)
	if !ok {
		return violation(op, arcIdx, "left breakpoint not found")
	}
	xr, ok := b.rightEdge(arcIdx)
	if !ok {
		return violation(op, arcIdx, "right breakpoint not found")
	}
	lArc, ok := b.leftArc(arcIdx)
	if !ok {
		return violation(op, arcIdx, "left arc not found")
	}
	rArc, ok := b.rightArc(arcIdx)
	if !ok {
		return violation(op, arcIdx, "right arc not found")
	}

	l := b.arc(lArc).Site
	m := b.arc(arcIdx).Site
	r := b.arc(rArc).Site

	center, err := circumcenter(l, m, r)
	if err != nil {
		s.stats.DroppedCircles++
		s.log.Warn("[f-for-circle] Событие пропущено", zap.Error(err), zap.Int("arc", arcIdx))
		return nil
	}
	s.stats.CircleEvents++

	s.halves = append(s.halves, s.finish(b.breakpoint(xl), center), s.finish(b.breakpoint(xr), center))
	s.stats.FinishedHalves += 2

	s.queue.removeCircle(lArc)
	s.queue.removeCircle(rArc)

	merged := newBreakPoint(center, normalVector(l.Sub(r)), l, r, s.newEdge())

	s.log.Debug("[f-for-circle] Дуга схлопнулась", zap.Int("arc", arcIdx), zap.Stringer("arc-site", m),
		zap.Stringer("vertex", center), zap.Float64("bottom", e.y))

	return b.replaceBreakpoint(xl, arcIdx, xr, merged, s.queue, s.sweepY)
}

// finish - половина ребра от начала точки излома до вершины
func (s *sweepState) finish(bp BreakPoint, vertex Point) halfEdge {
	start := bp.Origin
	if bp.fromAbove {
		// ребро приходит сверху, начинаем его не ниже верха рамки
		start = Point{vertex.X, math.Max(s.box.YMax, vertex.Y)}
	}
	return halfEdge{edge: bp.edge, seg: Segment{start, vertex}, finished: true}
}

// assembleSegments собирает половины ребер в отрезки и обрезает их рамкой.
// Две половины одного ребра соединяются в один отрезок, если хотя бы
// одна из них закончилась в вершине.
func assembleSegments(halves []halfEdge, edges int, box BoundingBox) []Segment {
	groups := make([][]halfEdge, edges)
	for _, h := range halves {
		groups[h.edge] = append(groups[h.edge], h)
	}

	var raw []Segment
	for _, g := range groups {
		if len(g) == 2 && (g[0].finished || g[1].finished) {
			raw = append(raw, Segment{g[0].seg.Vb, g[1].seg.Vb})
			continue
		}
		for _, h := range g {
			raw = append(raw, h.seg)
		}
	}

	segments := make([]Segment, 0, len(raw))
	for _, seg := range raw {
		clipped, ok := clipSegment(seg, box)
		if !ok || clipped.Length() <= epsilon {
			continue
		}
		segments = append(segments, clipped)
	}
	return segments
}
