package scrollscape

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrEmptyLandmarkID is returned when a landmark has no ID.
	ErrEmptyLandmarkID = errors.New("landmark id is empty")
	// ErrDuplicateLandmark is returned when two landmarks share an ID.
	ErrDuplicateLandmark = errors.New("duplicate landmark id")
)

// Landmark is one focusable point of interest. Identity is ID; position in
// the registry defines which scroll range selects it.
type Landmark struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Highlight   string `json:"highlight" mapstructure:"highlight"`
	Description string `json:"description" mapstructure:"description"`
}

// Registry is an ordered, immutable sequence of landmarks. It is shared
// read-only by the resolver and its subscribers.
type Registry struct {
	landmarks []Landmark
	index     map[string]int
}

// NewRegistry validates and copies landmarks into a new registry. IDs must be
// non-empty and unique. An empty registry is valid.
func NewRegistry(landmarks ...Landmark) (*Registry, error) {
	r := &Registry{
		landmarks: make([]Landmark, len(landmarks)),
		index:     make(map[string]int, len(landmarks)),
	}
	for i, lm := range landmarks {
		if lm.ID == "" {
			return nil, fmt.Errorf("landmark %d: %w", i, ErrEmptyLandmarkID)
		}
		if prev, ok := r.index[lm.ID]; ok {
			return nil, fmt.Errorf("landmark %d %q (first at %d): %w", i, lm.ID, prev, ErrDuplicateLandmark)
		}
		r.index[lm.ID] = i
		r.landmarks[i] = lm
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on invalid input. Intended for
// static landmark tables.
func MustRegistry(landmarks ...Landmark) *Registry {
	r, err := NewRegistry(landmarks...)
	if err != nil {
		panic("scrollscape: " + err.Error())
	}
	return r
}

// Len returns the number of landmarks. A nil registry is empty.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.landmarks)
}

// At returns the landmark at index i. Panics if i is out of range.
func (r *Registry) At(i int) Landmark {
	return r.landmarks[i]
}

// Lookup returns the index of the landmark with the given ID.
func (r *Registry) Lookup(id string) (int, bool) {
	if r == nil {
		return -1, false
	}
	i, ok := r.index[id]
	if !ok {
		return -1, false
	}
	return i, true
}

// All iterates the landmarks in order.
func (r *Registry) All() iter.Seq2[int, Landmark] {
	return func(yield func(int, Landmark) bool) {
		if r == nil {
			return
		}
		for i, lm := range r.landmarks {
			if !yield(i, lm) {
				return
			}
		}
	}
}
