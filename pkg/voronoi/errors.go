package voronoi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput - NaN/Inf в координатах или вырожденная рамка
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateGeometry - три точки на одной прямой, центра окружности нет
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrCoincidentSites - два сайта с одинаковыми координатами
	ErrCoincidentSites = errors.New("coincident sites")
)

// InvariantViolation означает, что дерево пляжной линии повреждено.
// Это ошибка программы, а не входных данных.
type InvariantViolation struct {
	Op     string
	Node   int
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("beachline invariant violated in %s at node %d: %s", e.Op, e.Node, e.Detail)
}

func violation(op string, node int, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Op: op, Node: node, Detail: fmt.Sprintf(format, args...)}
}
