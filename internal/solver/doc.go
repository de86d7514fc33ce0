// Package solver computes optimal 0/1 knapsack selections with a rolling
// two-row dynamic programming table over capacities 0..capacity.
package solver
