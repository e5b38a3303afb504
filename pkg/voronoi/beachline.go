package voronoi

import (
	"fmt"
	"math"
)

const nilNode = -1

type nodeKind uint8

const (
	arcNode nodeKind = iota
	breakpointNode
)

// Arc - лист пляжной линии, кусок параболы сайта
type Arc struct {
	Site Point
}

// BreakPoint - внутренний узел, точка пересечения соседних парабол.
// Двигается по лучу Origin + t*Direction и рисует ребро edge.
// fromAbove - точка излома между сайтами верхнего ряда: она спускается
// из бесконечности по прямой x = Origin.X, Origin только делит ребро.
type BreakPoint struct {
	Origin    Point
	Direction Point
	Left      Point
	Right     Point
	edge      int
	fromAbove bool
}

func newBreakPoint(origin, direction, left, right Point, edge int) BreakPoint {
	return BreakPoint{
		Origin:    origin,
		Direction: direction,
		Left:      left,
		Right:     right,
		edge:      edge,
	}
}

type entry struct {
	parent  int
	left    int
	right   int
	kind    nodeKind
	arc     Arc
	bp      BreakPoint
	removed bool
}

func newEntry(left, right, parent int, kind nodeKind) entry {
	return entry{parent: parent, left: left, right: right, kind: kind}
}

// Пляжная линия - двоичное дерево в слайсе, узлы адресуются индексами.
// Удаленные узлы остаются в слайсе с removed = true, индексы не переиспользуются.
type beachline struct {
	root  int
	nodes []entry
}

func newBeachline() *beachline {
	return &beachline{root: nilNode}
}

func (b *beachline) empty() bool {
	return b.root == nilNode
}

func (b *beachline) push(e entry) int {
	b.nodes = append(b.nodes, e)
	return len(b.nodes) - 1
}

func (b *beachline) isArc(idx int) bool {
	return idx >= 0 && idx < len(b.nodes) && !b.nodes[idx].removed && b.nodes[idx].kind == arcNode
}

func (b *beachline) arc(idx int) Arc {
	return b.nodes[idx].arc
}

func (b *beachline) breakpoint(idx int) BreakPoint {
	return b.nodes[idx].bp
}

func (b *beachline) addFirstParabola(site Point) error {
	if b.root != nilNode {
		return violation("addFirstParabola", b.root, "beachline is not empty")
	}
	e := newEntry(nilNode, nilNode, nilNode, arcNode)
	e.arc = Arc{Site: site}
	b.root = b.push(e)
	return nil
}

// arcUnderPoint спускается от корня и находит дугу над p.X.
// При равенстве с точкой излома уходим вправо.
func (b *beachline) arcUnderPoint(p Point, sweepY float64) (int, bool) {
	if b.root == nilNode {
		return nilNode, false
	}
	idx := b.root
	for {
		node := &b.nodes[idx]
		if node.kind == arcNode {
			return idx, true
		}
		x := breakpointAtX(node.bp.Left, node.bp.Right, sweepY)
		if p.X < x {
			idx = node.left
		} else {
			idx = node.right
		}
	}
}

// replaceArc заменяет лист arcIdx поддеревом a-xl-b-xr-c:
//
//	      xl
//	     /  \
//	    a    xr
//	        /  \
//	       b    c
func (b *beachline) replaceArc(arcIdx int, a Arc, xl BreakPoint, mid Arc, xr BreakPoint, c Arc, q *eventQueue, sweepY float64) error {
	if !b.isArc(arcIdx) {
		return violation("replaceArc", arcIdx, "node is not a live arc")
	}
	parent := b.nodes[arcIdx].parent

	aIdx := len(b.nodes)
	xlIdx := aIdx + 1
	bIdx := aIdx + 2
	xrIdx := aIdx + 3
	cIdx := aIdx + 4

	aEntry := newEntry(nilNode, nilNode, xlIdx, arcNode)
	aEntry.arc = a
	xlEntry := newEntry(aIdx, xrIdx, parent, breakpointNode)
	xlEntry.bp = xl
	bEntry := newEntry(nilNode, nilNode, xrIdx, arcNode)
	bEntry.arc = mid
	xrEntry := newEntry(bIdx, cIdx, xlIdx, breakpointNode)
	xrEntry.bp = xr
	cEntry := newEntry(nilNode, nilNode, xrIdx, arcNode)
	cEntry.arc = c

	b.push(aEntry)
	b.push(xlEntry)
	b.push(bEntry)
	b.push(xrEntry)
	b.push(cEntry)

	if err := b.relink("replaceArc", arcIdx, xlIdx); err != nil {
		return err
	}

	b.checkCircleEvent(aIdx, q, sweepY)
	b.checkCircleEvent(cIdx, q, sweepY)
	return nil
}

// splitArc заменяет лист arcIdx парой a-x-c. Так делится дуга, фокус
// которой лежит на прямой сканирования на одной высоте с новым сайтом:
//
//	    x
//	   / \
//	  a   c
func (b *beachline) splitArc(arcIdx int, a Arc, x BreakPoint, c Arc, q *eventQueue, sweepY float64) error {
	if !b.isArc(arcIdx) {
		return violation("splitArc", arcIdx, "node is not a live arc")
	}
	parent := b.nodes[arcIdx].parent

	aIdx := len(b.nodes)
	xIdx := aIdx + 1
	cIdx := aIdx + 2

	aEntry := newEntry(nilNode, nilNode, xIdx, arcNode)
	aEntry.arc = a
	xEntry := newEntry(aIdx, cIdx, parent, breakpointNode)
	xEntry.bp = x
	cEntry := newEntry(nilNode, nilNode, xIdx, arcNode)
	cEntry.arc = c

	b.push(aEntry)
	b.push(xEntry)
	b.push(cEntry)

	if err := b.relink("splitArc", arcIdx, xIdx); err != nil {
		return err
	}

	b.checkCircleEvent(aIdx, q, sweepY)
	b.checkCircleEvent(cIdx, q, sweepY)
	return nil
}

// relink ставит поддерево sub на место листа arcIdx и помечает лист удаленным
func (b *beachline) relink(op string, arcIdx, sub int) error {
	parent := b.nodes[arcIdx].parent
	if parent != nilNode {
		parentNode := &b.nodes[parent]
		switch arcIdx {
		case parentNode.left:
			parentNode.left = sub
		case parentNode.right:
			parentNode.right = sub
		default:
			return violation(op, parent, "parent does not claim arc %d", arcIdx)
		}
	} else {
		b.root = sub
	}
	b.nodes[arcIdx].removed = true
	b.nodes[arcIdx].parent = nilNode
	return nil
}

// replaceBreakpoint убирает схлопнувшуюся дугу arcIdx. Ее непосредственный
// родитель (одна из двух ограничивающих точек излома) вырезается из дерева,
// а вторая точка излома (предок родителя) перезаписывается на merged.
func (b *beachline) replaceBreakpoint(xlIdx, arcIdx, xrIdx int, merged BreakPoint, q *eventQueue, sweepY float64) error {
	const op = "replaceBreakpoint"

	lArc, ok := b.leftArc(arcIdx)
	if !ok {
		return violation(op, arcIdx, "left arc not found")
	}
	rArc, ok := b.rightArc(arcIdx)
	if !ok {
		return violation(op, arcIdx, "right arc not found")
	}

	parent := b.nodes[arcIdx].parent
	if parent == nilNode {
		return violation(op, arcIdx, "parent not found")
	}

	var other int
	switch parent {
	case xrIdx:
		other = xlIdx
	case xlIdx:
		other = xrIdx
	default:
		return violation(op, parent, "parent is neither breakpoint %d nor %d", xlIdx, xrIdx)
	}
	b.nodes[other].bp = merged

	parentNode := b.nodes[parent]
	var sibling int
	switch arcIdx {
	case parentNode.left:
		sibling = parentNode.right
	case parentNode.right:
		sibling = parentNode.left
	default:
		return violation(op, parent, "parent does not claim arc %d", arcIdx)
	}

	granny := parentNode.parent
	if granny == nilNode {
		return violation(op, parent, "grandparent not found")
	}
	grannyNode := &b.nodes[granny]
	switch parent {
	case grannyNode.left:
		grannyNode.left = sibling
	case grannyNode.right:
		grannyNode.right = sibling
	default:
		return violation(op, granny, "grandparent does not claim parent %d", parent)
	}
	b.nodes[sibling].parent = granny

	b.nodes[arcIdx].removed = true
	b.nodes[arcIdx].parent = nilNode
	b.nodes[parent].removed = true
	b.nodes[parent].parent = nilNode

	b.checkCircleEvent(lArc, q, sweepY)
	b.checkCircleEvent(rArc, q, sweepY)
	return nil
}

// checkCircleEvent ставит в очередь circle-событие для дуги, если ее
// точки излома сходятся в будущем. Точки излома сходятся, только когда
// сайты слева, дуги и справа идут по часовой стрелке. Лучи из общего
// начала, которые расходятся, вершину не дают.
func (b *beachline) checkCircleEvent(arcIdx int, q *eventQueue, sweepY float64) bool {
	xl, ok := b.leftEdge(arcIdx)
	if !ok {
		return false
	}
	xr, ok := b.rightEdge(arcIdx)
	if !ok {
		return false
	}

	l := b.arc(b.maximum(b.nodes[xl].left))
	r := b.arc(b.minimum(b.nodes[xr].right))
	if l.Site == r.Site {
		return false
	}
	if orientation(l.Site, b.arc(arcIdx).Site, r.Site) >= 0 {
		return false
	}

	s, ok := meet(b.breakpoint(xl), b.breakpoint(xr))
	if !ok {
		return false
	}

	radius := distance(b.arc(arcIdx).Site, s)
	bottom := s.Y - radius
	tol := sweepTolerance(sweepY)
	if bottom > sweepY+tol {
		return false
	}
	if bottom > sweepY-tol {
		bottom = sweepY
	}
	q.pushCircle(arcIdx, s, bottom)
	return true
}

// meet - точка, в которой сойдутся точки излома l и r
func meet(l, r BreakPoint) (Point, bool) {
	switch {
	case l.fromAbove && r.fromAbove:
		return Point{}, false
	case l.fromAbove:
		return lineRayIntersection(l.Origin.X, r.Origin, r.Direction)
	case r.fromAbove:
		return lineRayIntersection(r.Origin.X, l.Origin, l.Direction)
	}
	return rayIntersection(l.Origin, l.Direction, r.Origin, r.Direction)
}

func (b *beachline) minimum(idx int) int {
	for b.nodes[idx].kind == breakpointNode {
		idx = b.nodes[idx].left
	}
	return idx
}

func (b *beachline) maximum(idx int) int {
	for b.nodes[idx].kind == breakpointNode {
		idx = b.nodes[idx].right
	}
	return idx
}

// predecessor - ближайший слева узел (для листа - точка излома)
func (b *beachline) predecessor(idx int) int {
	for b.nodes[idx].parent != nilNode && b.nodes[b.nodes[idx].parent].left == idx {
		idx = b.nodes[idx].parent
	}
	return b.nodes[idx].parent
}

func (b *beachline) successor(idx int) int {
	for b.nodes[idx].parent != nilNode && b.nodes[b.nodes[idx].parent].right == idx {
		idx = b.nodes[idx].parent
	}
	return b.nodes[idx].parent
}

func (b *beachline) leftArc(arcIdx int) (int, bool) {
	pred := b.predecessor(arcIdx)
	if pred == nilNode {
		return nilNode, false
	}
	return b.maximum(b.nodes[pred].left), true
}

func (b *beachline) rightArc(arcIdx int) (int, bool) {
	succ := b.successor(arcIdx)
	if succ == nilNode {
		return nilNode, false
	}
	return b.minimum(b.nodes[succ].right), true
}

func (b *beachline) leftEdge(arcIdx int) (int, bool) {
	pred := b.predecessor(arcIdx)
	if pred == nilNode || b.nodes[pred].kind != breakpointNode {
		return nilNode, false
	}
	return pred, true
}

func (b *beachline) rightEdge(arcIdx int) (int, bool) {
	succ := b.successor(arcIdx)
	if succ == nilNode || b.nodes[succ].kind != breakpointNode {
		return nilNode, false
	}
	return succ, true
}

// extendEdgesToBoundingBox продлевает все оставшиеся точки излома до рамки
func (b *beachline) extendEdgesToBoundingBox(box BoundingBox) []halfEdge {
	var edges []halfEdge
	for _, idx := range b.inorder() {
		node := b.nodes[idx]
		if node.kind != breakpointNode {
			continue
		}
		edges = append(edges, halfEdge{
			edge: node.bp.edge,
			seg:  clipRayToBox(node.bp.Origin, node.bp.Direction, box),
		})
		if node.bp.fromAbove {
			// верхняя половина прямой, от Origin до верха рамки
			top := Point{node.bp.Origin.X, math.Max(box.YMax, node.bp.Origin.Y)}
			edges = append(edges, halfEdge{edge: node.bp.edge, seg: Segment{node.bp.Origin, top}})
		}
	}
	return edges
}

// inorder - индексы узлов слева направо
func (b *beachline) inorder() []int {
	var ret []int
	var stack []int
	idx := b.root
	for idx != nilNode || len(stack) > 0 {
		for idx != nilNode {
			stack = append(stack, idx)
			if b.nodes[idx].kind == arcNode {
				break
			}
			idx = b.nodes[idx].left
		}
		idx = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ret = append(ret, idx)
		if b.nodes[idx].kind == arcNode {
			idx = nilNode
		} else {
			idx = b.nodes[idx].right
		}
	}
	return ret
}

func (b *beachline) len() int {
	return len(b.nodes)
}

func (b *beachline) arcCount() int {
	var n int
	for _, idx := range b.inorder() {
		if b.nodes[idx].kind == arcNode {
			n++
		}
	}
	return n
}

// validate проверяет форму дерева: связи с родителями, чередование
// дуга/точка излома/дуга и неубывание x точек излома на высоте sweepY
func (b *beachline) validate(sweepY float64) error {
	const op = "validate"
	if b.root == nilNode {
		return nil
	}
	if b.nodes[b.root].parent != nilNode {
		return violation(op, b.root, "root has parent %d", b.nodes[b.root].parent)
	}

	order := b.inorder()
	prevX := math.Inf(-1)
	for i, idx := range order {
		node := b.nodes[idx]
		if node.removed {
			return violation(op, idx, "removed node is reachable")
		}
		wantArc := i%2 == 0
		if wantArc != (node.kind == arcNode) {
			return violation(op, idx, "position %d breaks arc/breakpoint alternation", i)
		}
		for _, child := range []int{node.left, node.right} {
			if child != nilNode && b.nodes[child].parent != idx {
				return violation(op, child, "parent link %d, expected %d", b.nodes[child].parent, idx)
			}
		}
		if node.kind == arcNode {
			if node.left != nilNode || node.right != nilNode {
				return violation(op, idx, "arc has children")
			}
			continue
		}
		if node.left == nilNode || node.right == nilNode {
			return violation(op, idx, "breakpoint is missing a child")
		}
		if l := b.nodes[order[i-1]].arc.Site; l != node.bp.Left {
			return violation(op, idx, "left site %v, neighbor arc has %v", node.bp.Left, l)
		}
		if i+1 == len(order) {
			return violation(op, idx, "beachline ends with a breakpoint")
		}
		if r := b.nodes[order[i+1]].arc.Site; r != node.bp.Right {
			return violation(op, idx, "right site %v, neighbor arc has %v", node.bp.Right, r)
		}
		x := breakpointAtX(node.bp.Left, node.bp.Right, sweepY)
		if x < prevX-1e-6*math.Max(1, math.Abs(prevX)) {
			return violation(op, idx, "breakpoint x %v is left of previous %v", x, prevX)
		}
		prevX = x
	}
	return nil
}

func (b *beachline) describe() []string {
	var ret []string
	for _, idx := range b.inorder() {
		node := b.nodes[idx]
		if node.kind == arcNode {
			ret = append(ret, fmt.Sprintf("arc#%d%v", idx, node.arc.Site))
		} else {
			ret = append(ret, fmt.Sprintf("bp#%d", idx))
		}
	}
	return ret
}
