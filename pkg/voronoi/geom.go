package voronoi

import (
	"fmt"
	"math"
)

// Point - точка на плоскости (сайт, вершина или вектор направления)
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point   { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point   { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) IsFinite() bool      { return isFinite(p.X) && isFinite(p.Y) }
func (p Point) String() string      { return fmt.Sprintf("(%v, %v)", p.X, p.Y) }
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Segment - готовое ребро диаграммы, порядок концов не важен
type Segment struct {
	Va Point
	Vb Point
}

func (s Segment) Length() float64 { return distance(s.Va, s.Vb) }

// Equal сравнивает отрезки без учета порядка концов
func (s Segment) Equal(o Segment, eps float64) bool {
	return (s.Va.Near(o.Va, eps) && s.Vb.Near(o.Vb, eps)) ||
		(s.Va.Near(o.Vb, eps) && s.Vb.Near(o.Va, eps))
}

// Bounding Box
type BoundingBox struct {
	XMin, XMax, YMin, YMax float64
}

// Create new Bounding Box
func NewBoundingBox(xMin, xMax, yMin, yMax float64) BoundingBox {
	return BoundingBox{xMin, xMax, yMin, yMax}
}

func (b BoundingBox) Width() float64  { return b.XMax - b.XMin }
func (b BoundingBox) Height() float64 { return b.YMax - b.YMin }

// Validate проверяет, что рамка конечна и имеет положительную площадь
func (b BoundingBox) Validate() error {
	if !isFinite(b.XMin) || !isFinite(b.XMax) || !isFinite(b.YMin) || !isFinite(b.YMax) {
		return fmt.Errorf("%w: bounding box %+v is not finite", ErrInvalidInput, b)
	}
	if b.XMin >= b.XMax || b.YMin >= b.YMax {
		return fmt.Errorf("%w: bounding box %+v has non-positive extent", ErrInvalidInput, b)
	}
	return nil
}

func (b BoundingBox) Contains(p Point, eps float64) bool {
	return p.X >= b.XMin-eps && p.X <= b.XMax+eps && p.Y >= b.YMin-eps && p.Y <= b.YMax+eps
}

const epsilon = 1e-9

// допуск сравнения высот прямой сканирования
func sweepTolerance(y float64) float64 {
	return epsilon * math.Max(1, math.Abs(y))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Точка на параболе с фокусом focus и директрисой y = sweepY над координатой x.
// Если фокус лежит на директрисе, парабола вырождается в вертикальный луч,
// тогда возвращаем середину между фокусом и x на высоте директрисы.
func pointOnArcAtX(focus Point, sweepY, x float64) Point {
	dx := x - focus.X
	dy := focus.Y - sweepY

	if dy == 0 {
		return Point{(focus.X + x) / 2, sweepY}
	}
	return Point{x, dx*dx/(dy*2) + (focus.Y+sweepY)/2}
}

// X точки пересечения парабол l и r, где парабола l слева, а r справа.
// Фокус на директрисе дает вертикальный луч, пересечение - его X.
func breakpointAtX(l, r Point, sweepY float64) float64 {
	// сдвигаем систему координат в l.X
	bx := r.X - l.X
	ay := l.Y - sweepY
	by := r.Y - sweepY

	switch {
	case ay == 0 && by == 0:
		return l.X + bx/2
	case ay == 0:
		return l.X
	case by == 0:
		return r.X
	}

	denom := ay - by
	sqrtD := math.Sqrt(ay * by * (denom*denom + bx*bx))
	if bx > 0 {
		// тот же корень, домноженный на сопряженное: без вычитания близких чисел
		return l.X + ay*(bx*bx-by*denom)/(ay*bx+sqrtD)
	}
	if denom == 0 {
		return l.X + bx/2
	}
	return (ay*bx-sqrtD)/denom + l.X
}

// orientation < 0, если a, b, c идут по часовой стрелке
func orientation(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

// Поворот на 90 градусов против часовой стрелки
func normalVector(v Point) Point {
	return Point{-v.Y, v.X}
}

// Центр окружности через три точки
func circumcenter(a, b, c Point) (Point, error) {
	c1 := c.X*c.X + c.Y*c.Y - a.X*a.X - a.Y*a.Y
	c2 := c.X*c.X + c.Y*c.Y - b.X*b.X - b.Y*b.Y
	a1 := -2 * (a.X - c.X)
	a2 := -2 * (b.X - c.X)
	b1 := -2 * (a.Y - c.Y)
	b2 := -2 * (b.Y - c.Y)

	numer := c1*a2 - c2*a1
	denom := b1*a2 - b2*a1
	if denom == 0 {
		return Point{}, fmt.Errorf("%w: %v, %v, %v are collinear", ErrDegenerateGeometry, a, b, c)
	}

	y := numer / denom
	var x float64
	if a2 != 0 {
		x = (c2 - b2*y) / a2
	} else {
		x = (c1 - b1*y) / a1
	}
	return Point{x, y}, nil
}

// Пересечение двух лучей. Лучи параллельны или пересекаются позади
// одного из начал - пересечения нет.
func rayIntersection(oa, da, ob, db Point) (Point, bool) {
	dx := ob.X - oa.X
	dy := ob.Y - oa.Y
	det := db.X*da.Y - db.Y*da.X
	if det == 0 {
		return Point{}, false
	}

	u := (dy*db.X - dx*db.Y) / det
	v := (dy*da.X - dx*da.Y) / det
	if u < -epsilon || v < -epsilon {
		return Point{}, false
	}
	if u < 0 {
		u = 0
	}
	return oa.Add(da.Mul(u)), true
}

// Пересечение вертикальной прямой x = lineX с лучом ob + v*db
func lineRayIntersection(lineX float64, ob, db Point) (Point, bool) {
	if db.X == 0 {
		return Point{}, false
	}
	v := (lineX - ob.X) / db.X
	if v < -epsilon {
		return Point{}, false
	}
	if v < 0 {
		v = 0
	}
	return Point{lineX, ob.Y + db.Y*v}, true
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Продлеваем луч до первой стенки рамки, через которую он выходит
func clipRayToBox(origin, direction Point, box BoundingBox) Segment {
	var cx, cy float64
	switch {
	case direction.X < 0:
		cx = (box.XMin - origin.X) / direction.X
	case direction.X > 0:
		cx = (box.XMax - origin.X) / direction.X
	}
	switch {
	case direction.Y < 0:
		cy = (box.YMin - origin.Y) / direction.Y
	case direction.Y > 0:
		cy = (box.YMax - origin.Y) / direction.Y
	}

	var c float64
	switch {
	case direction.X == 0:
		c = cy
	case direction.Y == 0:
		c = cx
	default:
		c = math.Min(cx, cy)
	}
	// начало за рамкой и луч уходит от нее
	if c < 0 {
		c = 0
	}
	return Segment{origin, origin.Add(direction.Mul(c))}
}

// Отсечение отрезка рамкой (Лианг-Барски)
func clipSegment(s Segment, box BoundingBox) (Segment, bool) {
	ax := s.Va.X
	ay := s.Va.Y
	dx := s.Vb.X - ax
	dy := s.Vb.Y - ay
	t0 := 0.0
	t1 := 1.0

	// p - проекция направления на нормаль стенки, q - расстояние до нее
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			} else if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			} else if r < t1 {
				t1 = r
			}
		}
		return true
	}

	// левая, правая, нижняя и верхняя стенки
	if !clip(-dx, ax-box.XMin) || !clip(dx, box.XMax-ax) ||
		!clip(-dy, ay-box.YMin) || !clip(dy, box.YMax-ay) {
		return Segment{}, false
	}

	ret := s
	if t0 > 0 {
		ret.Va = Point{ax + t0*dx, ay + t0*dy}
	}
	if t1 < 1 {
		ret.Vb = Point{ax + t1*dx, ay + t1*dy}
	}
	return ret, true
}
