package voronoi

import (
	"fmt"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Структура диаграммы
type Diagram struct {
	// отрезки ребер, обрезанные рамкой
	Segments []Segment
	// сайты, совпавшие с уже добавленными (пропущены)
	Coincident []Point
	Stats      Stats
}

// Stats - счетчики одного прохода
type Stats struct {
	SiteEvents     int
	CircleEvents   int
	DroppedCircles int
	FinishedHalves int
	OpenHalves     int
}

type config struct {
	log    *logger.ZapLogger
	strict bool
	checks bool
}

type Option func(*config)

// WithLogger - куда писать ход алгоритма. По умолчанию логов нет.
func WithLogger(log *logger.ZapLogger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithStrictSites - совпадающие сайты становятся ошибкой ErrCoincidentSites
func WithStrictSites() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithInvariantChecks - проверять пляжную линию после каждого события
func WithInvariantChecks() Option {
	return func(c *config) {
		c.checks = true
	}
}

// ComputeVoronoi возвращает только отрезки диаграммы
func ComputeVoronoi(sites []Point, bbox BoundingBox, opts ...Option) ([]Segment, error) {
	d, err := CreateDiagram(sites, bbox, opts...)
	if err != nil {
		return nil, err
	}
	return d.Segments, nil
}

// Основная функция - база.
// Строит ребра диаграммы Вороного алгоритмом Форчуна: прямая идет
// сверху вниз (от больших Y к меньшим), ребра обрезаются рамкой bbox.
func CreateDiagram(sites []Point, bbox BoundingBox, opts ...Option) (*Diagram, error) {
	cfg := &config{log: logger.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.log

	if err := validateInput(sites, bbox); err != nil {
		log.Error("[f] Некорректные входные данные", zap.Error(err))
		return nil, err
	}

	unique, coincident := dedupe(sites)
	for _, p := range coincident {
		log.Warn("[f] Найден дубликат!", zap.Stringer("site", p))
	}
	if cfg.strict && len(coincident) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrCoincidentSites, coincident)
	}

	log.Info("[f] Алгоритм Форчуна запущен", zap.Int("sites", len(unique)), zap.Any("bbox", bbox))

	s := newSweepState(cfg, bbox)
	for _, site := range unique {
		s.queue.pushSite(site)
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	log.Info("[f] Алгоритм завершен!", zap.Int("site-events", s.stats.SiteEvents),
		zap.Int("circle-events", s.stats.CircleEvents), zap.Int("dropped", s.stats.DroppedCircles))

	open := s.beachline.extendEdgesToBoundingBox(bbox)
	s.stats.OpenHalves = len(open)
	halves := append(s.halves, open...)

	segments := assembleSegments(halves, s.nextEdge, bbox)
	log.Info("[f] Остатки соединены", zap.Int("segments", len(segments)), zap.Int("open", len(open)),
		zap.Int("arcs", s.beachline.arcCount()))

	return &Diagram{
		Segments:   segments,
		Coincident: coincident,
		Stats:      s.stats,
	}, nil
}

// validateInput собирает все ошибки входа сразу
func validateInput(sites []Point, bbox BoundingBox) error {
	err := bbox.Validate()
	for i, p := range sites {
		if !p.IsFinite() {
			err = multierr.Append(err, fmt.Errorf("%w: site %d %v is not finite", ErrInvalidInput, i, p))
		}
	}
	return err
}

// dedupe оставляет первое вхождение каждой точки, порядок сохраняется
func dedupe(sites []Point) (unique, coincident []Point) {
	seen := make(map[Point]struct{}, len(sites))
	unique = make([]Point, 0, len(sites))
	for _, p := range sites {
		if _, ok := seen[p]; ok {
			coincident = append(coincident, p)
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique, coincident
}
