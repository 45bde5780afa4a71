// Package idgen provides client-ID generators for models. Client IDs are
// process-local tags, distinct from the persistence-layer "id" attribute;
// uniqueness holds within one running process only (Sequential) or globally
// (UUID).
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/xmzhu2/yui3/pkg/core"
)

// Sequential issues prefix_N tags from a monotonically increasing counter.
// Safe for concurrent use.
type Sequential struct {
	prefix string
	n      atomic.Uint64
}

// NewSequential creates a counter-backed generator. An empty prefix
// defaults to "model".
func NewSequential(prefix string) *Sequential {
	if prefix == "" {
		prefix = "model"
	}
	return &Sequential{prefix: prefix}
}

// Next implements core.IDGenerator.
func (g *Sequential) Next() string {
	return fmt.Sprintf("%s_%d", g.prefix, g.n.Add(1))
}

// UUID issues random UUID strings, for callers that need client IDs to
// survive collisions across processes or sessions.
type UUID struct{}

// Next implements core.IDGenerator.
func (UUID) Next() string {
	return uuid.NewString()
}

var _ core.IDGenerator = (*Sequential)(nil)
var _ core.IDGenerator = UUID{}
