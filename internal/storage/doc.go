// Package storage holds the item catalog served by the HTTP API.
package storage
