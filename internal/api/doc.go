// Package api exposes the knapsack solver and item catalog over JSON HTTP.
package api
