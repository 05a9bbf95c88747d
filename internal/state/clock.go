package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock stamps outgoing ops with this site's id and a Lamport time.
type Clock struct {
	site    string
	lamport atomic.Uint64
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

func (c *Clock) Site() string { return c.site }

// Stamp assigns the next Lamport time and the local site to op.
func (c *Clock) Stamp(op Op) Op {
	op.Lamport = c.lamport.Add(1)
	op.Site = c.site
	return op
}

// Witness advances the clock past a time seen on a remote op.
func (c *Clock) Witness(t uint64) {
	for {
		cur := c.lamport.Load()
		if t <= cur || c.lamport.CompareAndSwap(cur, t) {
			return
		}
	}
}

func (c *Clock) Now() uint64 { return c.lamport.Load() }
