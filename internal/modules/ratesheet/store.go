// README: Rate table holder; the whole table is swapped atomically on load.
package ratesheet

import "sync/atomic"

type Store struct {
	current atomic.Pointer[RateTable]
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs t and returns the table it replaced.
func (s *Store) Replace(t *RateTable) *RateTable {
	return s.current.Swap(t)
}

// Current returns the loaded table, or nil before the first load.
func (s *Store) Current() *RateTable {
	return s.current.Load()
}
