package matching

import "sync/atomic"

// Store holds the single current weight vector for the process. Reads always
// observe one complete published vector; SetWeights replaces the whole vector
// with an atomic pointer swap, so concurrent rankings never see a partially
// updated configuration. Concurrent writers are last-write-wins.
type Store struct {
	current atomic.Pointer[WeightVector]
}

// NewStore creates a Store seeded with the built-in default weights.
func NewStore() *Store {
	s := &Store{}
	w := DefaultWeights()
	s.current.Store(&w)
	return s
}

// Weights returns a copy of the current vector. Mutating the returned map
// does not affect the store.
func (s *Store) Weights() WeightVector {
	return (*s.current.Load()).Clone()
}

// SetWeights applies a partial update on top of the current vector.
// Keys absent from the candidate retain their previous value. The update is
// validated as a whole before anything is published; on any validation
// failure the prior vector stays in effect. Returns the complete new vector.
func (s *Store) SetWeights(candidate map[string]float64) (WeightVector, error) {
	if err := WeightVector(candidate).Validate(); err != nil {
		return nil, err
	}

	next := (*s.current.Load()).Clone()
	for k, v := range candidate {
		next[k] = v
	}

	s.current.Store(&next)
	return next.Clone(), nil
}
