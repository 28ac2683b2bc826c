// Package state holds the values published by the poller for the host to read.
//
// Every field of Published is locked on its own. Writers update fields one at
// a time, so a reader racing a poll cycle may see a new title next to an old
// position. The host refreshes often enough that this never matters.
package state

// Published is the set of values exposed to the host
type Published struct {
	Artist          Slot[string]
	Title           Slot[string]
	PositionDisplay Slot[string]
	PositionSeconds Slot[int64]
	LengthDisplay   Slot[string]
	LengthSeconds   Slot[int64]
	Status          Slot[string]
}

// New returns a Published with every slot empty
func New() *Published {
	return &Published{}
}

// Snapshot is a copy of every slot. Empty slots hold their zero value.
type Snapshot struct {
	Artist          string
	Title           string
	PositionDisplay string
	PositionSeconds int64
	LengthDisplay   string
	LengthSeconds   int64
	Status          string
}

// Snapshot copies the slots one by one. It is not atomic across slots.
func (p *Published) Snapshot() Snapshot {
	var s Snapshot
	s.Artist, _ = p.Artist.Load()
	s.Title, _ = p.Title.Load()
	s.PositionDisplay, _ = p.PositionDisplay.Load()
	s.PositionSeconds, _ = p.PositionSeconds.Load()
	s.LengthDisplay, _ = p.LengthDisplay.Load()
	s.LengthSeconds, _ = p.LengthSeconds.Load()
	s.Status, _ = p.Status.Load()
	return s
}
