package solver

import (
	"fmt"
	"math"
)

// maxColumns bounds a single table row so that make never panics with
// "len out of range", with or without a cell limit.
var maxColumns = min(int64(math.MaxInt)/32, 1<<32)

type dpSolver struct {
	cellLimit int64
}

// Option configures a Solver.
type Option func(*dpSolver)

// WithCellLimit bounds len(items)*(capacity+1). Zero disables the check.
func WithCellLimit(limit int64) Option {
	return func(s *dpSolver) {
		if limit < 0 {
			limit = 0
		}
		s.cellLimit = limit
	}
}

// New creates a Solver based on 0/1 knapsack dynamic programming.
func New(opts ...Option) Solver {
	s := &dpSolver{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// selection is a persistent singly linked list of item positions.
// Nodes are never mutated, so cells in later rows can share tails
// with cells in earlier rows.
type selection struct {
	pos  int
	next *selection
}

// candidate is the content of one table cell.
type candidate struct {
	value  int
	cost   int
	chosen *selection
}

func (c candidate) with(pos int, item Item) candidate {
	return candidate{
		value:  c.value + item.Value,
		cost:   c.cost + item.Cost,
		chosen: &selection{pos: pos, next: c.chosen},
	}
}

func (s *dpSolver) Solve(items []Item, capacity int) (Result, error) {
	if err := validate(items, capacity); err != nil {
		return Result{}, err
	}
	if len(items) == 0 {
		return Result{Chosen: []int{}}, nil
	}
	if err := s.checkSize(len(items), capacity); err != nil {
		return Result{}, err
	}

	prev := make([]candidate, capacity+1)
	cur := make([]candidate, capacity+1)

	for pos, item := range items {
		for c := 0; c <= capacity; c++ {
			if item.Cost > c {
				cur[c] = prev[c]
				continue
			}
			rest := prev[c-item.Cost]
			if rest.value+item.Value > prev[c].value {
				cur[c] = rest.with(pos, item)
			} else {
				cur[c] = prev[c]
			}
		}
		prev, cur = cur, prev
	}

	return buildResult(items, prev[capacity])
}

// checkSize rejects tables whose row cannot be allocated or whose
// n*(capacity+1) cells exceed the limit, without overflowing int64.
func (s *dpSolver) checkSize(n, capacity int) error {
	columns := int64(capacity) + 1
	if capacity >= math.MaxInt-1 || columns > maxColumns {
		return fmt.Errorf("%w: capacity %d exceeds %d columns", ErrProblemTooLarge, capacity, maxColumns)
	}
	if s.cellLimit > 0 && columns > s.cellLimit/int64(n) {
		return fmt.Errorf("%w: %d items x %d columns > %d", ErrProblemTooLarge, n, columns, s.cellLimit)
	}
	return nil
}

func validate(items []Item, capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w: capacity %d is negative", ErrInvalidInput, capacity)
	}
	for pos, item := range items {
		if item.Cost < 0 {
			return fmt.Errorf("%w: item at position %d (index %d) has negative cost %d", ErrInvalidInput, pos, item.Index, item.Cost)
		}
	}
	return nil
}

// buildResult recomputes the aggregates from the chosen items and checks
// them against the values accumulated in the table cell.
func buildResult(items []Item, best candidate) (Result, error) {
	var positions []int
	for node := best.chosen; node != nil; node = node.next {
		positions = append(positions, node.pos)
	}

	result := Result{Chosen: make([]int, 0, len(positions))}
	for i := len(positions) - 1; i >= 0; i-- {
		item := items[positions[i]]
		result.Chosen = append(result.Chosen, item.Index)
		result.TotalValue += item.Value
		result.TotalCost += item.Cost
	}

	if result.TotalValue != best.value || result.TotalCost != best.cost {
		return Result{}, fmt.Errorf("inconsistent selection: recomputed value %d cost %d, table value %d cost %d",
			result.TotalValue, result.TotalCost, best.value, best.cost)
	}
	return result, nil
}
