package voronoi

type eventKind uint8

const (
	siteEvent eventKind = iota
	circleEvent
)

func (k eventKind) String() string {
	if k == siteEvent {
		return "site"
	}
	return "circle"
}

// Событие прямой сканирования. Для site - сама точка, для circle - индекс дуги,
// которая схлопнется, и центр окружности (x - для порядка при равных y).
type event struct {
	kind   eventKind
	site   Point
	arc    int
	center Point
	x      float64
	y      float64
	seq    uint64
	node   *rbtNode
}

// before - событие обрабатывается раньше other: больший y, при равенстве
// сначала circle, потом site, дальше меньший x и порядок добавления
func (e *event) before(other *event) bool {
	if e.y != other.y {
		return e.y > other.y
	}
	if e.kind != other.kind {
		return e.kind == circleEvent
	}
	if e.x != other.x {
		return e.x < other.x
	}
	return e.seq < other.seq
}

// Очередь событий с удалением circle-событий по индексу дуги
type eventQueue struct {
	tree    rbt
	circles map[int]*event
	seq     uint64
}

func newEventQueue() *eventQueue {
	return &eventQueue{circles: make(map[int]*event)}
}

func (q *eventQueue) pushSite(site Point) {
	q.push(&event{kind: siteEvent, site: site, arc: nilNode, x: site.X, y: site.Y})
}

func (q *eventQueue) pushCircle(arc int, center Point, bottom float64) {
	q.push(&event{kind: circleEvent, arc: arc, center: center, x: center.X, y: bottom})
}

func (q *eventQueue) push(e *event) {
	if e.kind == circleEvent {
		q.removeCircle(e.arc)
		q.circles[e.arc] = e
	}
	e.seq = q.seq
	q.seq++
	q.tree.insert(e)
}

// pop достает событие с наибольшим y
func (q *eventQueue) pop() (*event, bool) {
	first := q.tree.first
	if first == nil {
		return nil, false
	}
	e := first.value
	q.tree.removeNode(first)
	if e.kind == circleEvent {
		delete(q.circles, e.arc)
	}
	return e, true
}

func (q *eventQueue) peek() (*event, bool) {
	if q.tree.first == nil {
		return nil, false
	}
	return q.tree.first.value, true
}

// removeCircle убирает ожидающее circle-событие дуги, если оно есть
func (q *eventQueue) removeCircle(arc int) bool {
	e, ok := q.circles[arc]
	if !ok {
		return false
	}
	delete(q.circles, arc)
	q.tree.removeNode(e.node)
	return true
}

func (q *eventQueue) hasCircle(arc int) bool {
	_, ok := q.circles[arc]
	return ok
}

func (q *eventQueue) len() int {
	return q.tree.size
}
