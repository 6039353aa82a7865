package session

import (
	"sync/atomic"

	"github.com/san-kum/dataviewer/internal/grid"
)

// LastFrame holds the most recently decoded grid. The slot is swapped
// atomically, so a driver that renders from several goroutines cannot tear it.
type LastFrame struct {
	slot atomic.Pointer[grid.Grid]
}

// Record replaces the held grid. A nil grid clears the slot.
func (l *LastFrame) Record(g *grid.Grid) {
	l.slot.Store(g)
}

// Retrieve returns the held grid, or grid.Empty if nothing was recorded.
func (l *LastFrame) Retrieve() *grid.Grid {
	if g := l.slot.Load(); g != nil {
		return g
	}
	return grid.Empty
}

func (l *LastFrame) Has() bool {
	return l.slot.Load() != nil
}
