// Package stations генерирует точки (станции) для диаграммы.
package stations

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
)

// Grid раскладывает n станций по сетке, каждая в центре своей клетки
func Grid(n int, width, height float64) []voronoi.Point {
	if n <= 0 {
		return nil
	}
	stations := make([]voronoi.Point, 0, n)

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := width / float64(cols)
	yStep := height / float64(rows)

	for i := 0; i < rows && len(stations) < n; i++ {
		// строк и столбцов может быть, например, на 20 станций, а мы 16-17 генерим
		for j := 0; j < cols && len(stations) < n; j++ {
			stations = append(stations, voronoi.Point{
				X: xStep/2 + float64(j)*xStep,
				Y: yStep/2 + float64(i)*yStep,
			})
		}
	}
	return stations
}

// Random - n различных станций с целыми координатами в [0, width) x [0, height).
// Одинаковый seed дает одинаковые станции.
func Random(n, width, height int, seed int64) []voronoi.Point {
	if n <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	if n > width*height {
		n = width * height
	}
	rnd := rand.New(rand.NewSource(seed))

	seen := make(map[voronoi.Point]struct{}, n)
	stations := make([]voronoi.Point, 0, n)
	for len(stations) < n {
		p := voronoi.Point{
			X: float64(rnd.Intn(width)),
			Y: float64(rnd.Intn(height)),
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		stations = append(stations, p)
	}
	return stations
}

// Parse читает станции пользователя в виде "x,y; x,y". Точки разделяются
// точкой с запятой или переводом строки, пустые куски пропускаются.
func Parse(s string) ([]voronoi.Point, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
	var stations []voronoi.Point
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("%w: station %d %q: expected x,y", voronoi.ErrInvalidInput, i, part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: station %d %q: %v", voronoi.ErrInvalidInput, i, part, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: station %d %q: %v", voronoi.ErrInvalidInput, i, part, err)
		}
		p := voronoi.Point{X: x, Y: y}
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: station %d %v is not finite", voronoi.ErrInvalidInput, i, p)
		}
		stations = append(stations, p)
	}
	return stations, nil
}

