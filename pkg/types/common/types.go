// Package common holds the shared primitive types used across the PM
// scheduling engine: identifiers, tenancy scope, and pagination.
package common

import (
	"github.com/google/uuid"
)

// ID is a string alias for a UUID v4 entity identifier.
type ID string

// NewID generates a fresh random ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// String returns the ID as a plain string.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// ScopeID is the multi-tenant partition key. Templates, equipment and work
// orders never cross a scope boundary.
type ScopeID string

// String returns the ScopeID as a plain string.
func (s ScopeID) String() string {
	return string(s)
}

// IsZero reports whether the ScopeID is unset.
func (s ScopeID) IsZero() bool {
	return s == ""
}

// Metadata is an open-ended key-value bag attached to events and entities.
type Metadata map[string]string

// Pagination defines parameters for paginated list queries.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total,omitempty"`
}

// Normalize clamps pagination to sane bounds: limit in [1,200] defaulting to
// 50, offset never negative.
func (p *Pagination) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
