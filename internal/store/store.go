// Package store holds accepted member records.
//
// The store owns the second, store-level duplicate notion: a member already
// present (same student number, case-insensitive) is not added again. This is
// separate from the importer's within-file duplicate check.
package store

import (
	"context"
	"errors"

	"github.com/JonMunkholm/roster/internal/member"
)

// ErrDuplicate is returned by Add when the member is already stored.
var ErrDuplicate = errors.New("member already exists")

// Store is the record collection the roster service reconciles against.
type Store interface {
	// Has reports whether a record describing the same member is stored.
	Has(ctx context.Context, r member.Record) (bool, error)

	// Add stores a record. Returns ErrDuplicate if the member exists.
	Add(ctx context.Context, r member.Record) error

	// List returns all records in insertion order.
	List(ctx context.Context) ([]member.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
