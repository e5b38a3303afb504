package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/0x0FACED/go-voronoi/pkg/render"
	"github.com/0x0FACED/go-voronoi/pkg/stations"
	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"github.com/0x0FACED/go-voronoi/static"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Параметры диаграммы, общие для команд и формы на странице
type params struct {
	Width    int
	Height   int
	Stations int
	Random   bool
	Seed     int64
	// станции пользователя, если заданы - генератор не нужен
	Sites    []voronoi.Point
}

const (
	minSize       = 10
	maxSize       = 5000
	maxStations   = 2000
	// больше станций - на страницу только Info, иначе логи разрастаются
	debugStations = 200
	maxBody       = 1 << 20
)

// fromQuery - значения формы поверх p. Некорректные размеры и число станций
// игнорируются, а вот некорректные станции пользователя - ошибка.
func (p params) fromQuery(q url.Values) (params, error) {
	atoi := func(key string, dst *int, lo, hi int) {
		if v, err := strconv.Atoi(q.Get(key)); err == nil && v >= lo && v <= hi {
			*dst = v
		}
	}
	atoi("width", &p.Width, minSize, maxSize)
	atoi("height", &p.Height, minSize, maxSize)
	atoi("stations", &p.Stations, 1, maxStations)
	if q.Has("random") {
		p.Random = q.Get("random") == "true"
	}
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		p.Seed = v
	}
	if v := q.Get("sites"); v != "" {
		sites, err := stations.Parse(v)
		if err != nil {
			return p, err
		}
		p.Sites = sites
	}
	return p, p.check()
}

// fromRequest - параметры из адреса, а для POST станции берутся из тела (GeoJSON)
func (p params) fromRequest(r *http.Request) (params, error) {
	p, err := p.fromQuery(r.URL.Query())
	if err != nil || r.Method != http.MethodPost {
		return p, err
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return p, fmt.Errorf("read body: %w", err)
	}
	sites, err := render.ParseGeoJSON(data)
	if err != nil {
		return p, err
	}
	p.Sites = sites
	return p, p.check()
}

func (p params) check() error {
	if len(p.Sites) > maxStations {
		return fmt.Errorf("%w: %d stations, at most %d", voronoi.ErrInvalidInput, len(p.Sites), maxStations)
	}
	return nil
}

// count - сколько станций будет на диаграмме
func (p params) count() int {
	if p.Sites != nil {
		return len(p.Sites)
	}
	return p.Stations
}

func (p params) sites() ([]voronoi.Point, voronoi.BoundingBox) {
	box := voronoi.NewBoundingBox(0, float64(p.Width), 0, float64(p.Height))
	switch {
	case p.Sites != nil:
		return p.Sites, box
	case p.Random:
		return stations.Random(p.Stations, p.Width, p.Height, p.Seed), box
	}
	return stations.Grid(p.Stations, float64(p.Width), float64(p.Height)), box
}

func build(sites []voronoi.Point, box voronoi.BoundingBox, log *logger.ZapLogger) (*voronoi.Diagram, error) {
	d, err := voronoi.CreateDiagram(sites, box, voronoi.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("create diagram: %w", err)
	}
	return d, nil
}

type server struct {
	defaults params
	log      *logger.ZapLogger
	min      *minify.M
}

func newServer(defaults params, log *logger.ZapLogger) *server {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	return &server{defaults: defaults, log: log, min: m}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.diagramHandler)
	mux.HandleFunc("/png", s.pngHandler)
	mux.HandleFunc("/svg", s.svgHandler)
	mux.HandleFunc("/geojson", s.geojsonHandler)
	return mux
}

// parse отвечает 400, если параметры запроса некорректны
func (s *server) parse(w http.ResponseWriter, r *http.Request) (params, bool) {
	p, err := s.defaults.fromRequest(r)
	if err != nil {
		s.log.Warn("Некорректный запрос", zap.Error(err), zap.String("url", r.URL.String()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return p, false
	}
	return p, true
}

// diagram отвечает 500, если диаграмму построить не удалось
func (s *server) diagram(w http.ResponseWriter, p params, log *logger.ZapLogger) ([]voronoi.Point, voronoi.BoundingBox, *voronoi.Diagram, bool) {
	sites, box := p.sites()
	d, err := build(sites, box, log)
	if err != nil {
		s.log.Error("Ошибка построения диаграммы", zap.Error(err), zap.Int("stations", len(sites)))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, box, nil, false
	}
	return sites, box, d, true
}

// http обработчик страницы с диаграмой и формой для ввода данных
func (s *server) diagramHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	p, ok := s.parse(w, r)
	if !ok {
		return
	}

	level := zapcore.DebugLevel
	if p.count() > debugStations {
		level = zapcore.InfoLevel
	}
	log := logger.NewLevel(level)
	defer log.ClearLogs()

	sites, box, d, ok := s.diagram(w, p, log)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	mw := s.min.Writer("text/html", w)
	defer func() {
		if err := mw.Close(); err != nil {
			s.log.Error("Ошибка минификации страницы", zap.Error(err))
		}
	}()

	fmt.Fprintln(mw, static.Part1)
	if err := render.Chart(sites, d, box).Render(mw); err != nil {
		s.log.Error("Ошибка рендеринга диаграммы", zap.Error(err))
	}
	fmt.Fprintln(mw, static.Part2)
	// Вставляем логи в HTML
	fmt.Fprintln(mw, log.HTML())
	fmt.Fprintln(mw, static.Part3)
}

func (s *server) pngHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	sites, box, d, ok := s.diagram(w, p, logger.NewNop())
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.PNG(w, sites, d, box); err != nil {
		s.log.Error("Ошибка рендеринга png", zap.Error(err))
	}
}

func (s *server) svgHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	sites, box, d, ok := s.diagram(w, p, logger.NewNop())
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.SVG(w, sites, d, box); err != nil {
		s.log.Error("Ошибка рендеринга svg", zap.Error(err))
	}
}

func (s *server) geojsonHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	sites, _, d, ok := s.diagram(w, p, logger.NewNop())
	if !ok {
		return
	}
	data, err := render.MarshalGeoJSON(sites, d)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if _, err := w.Write(data); err != nil {
		s.log.Error("Ошибка записи geojson", zap.Error(err))
	}
}
