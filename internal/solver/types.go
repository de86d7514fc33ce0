package solver

// Item is a selectable unit. Index is the identifier reported back to the
// caller and need not match the item's position in the input.
type Item struct {
	Index int `json:"index" yaml:"index"`
	Cost  int `json:"cost" yaml:"cost"`
	Value int `json:"value" yaml:"value"`
}

// Result is the optimal selection for a single Solve call.
// Chosen holds the Index of every selected item in input order.
type Result struct {
	Chosen     []int
	TotalValue int
	TotalCost  int
}

// Solver describes the behaviour required from a knapsack solver.
type Solver interface {
	Solve(items []Item, capacity int) (Result, error)
}
