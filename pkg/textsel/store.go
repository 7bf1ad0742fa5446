package textsel

import (
	"sort"
)

// Store holds independently kept selection results, e.g. several search
// matches highlighted at the same time. Each result is addressed by the id
// returned from Add.
type Store struct {
	results map[int]*Result
	nextID  int
	closed  bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{results: make(map[int]*Result)}
}

// Add keeps r in the store and returns its id
func (st *Store) Add(r *Result) (int, error) {
	if st.closed {
		return 0, ErrClosed
	}
	if r == nil {
		r = &Result{}
	}
	id := st.nextID
	st.nextID++
	st.results[id] = r
	return id, nil
}

// Get returns the result stored under id
func (st *Store) Get(id int) (*Result, bool) {
	r, ok := st.results[id]
	return r, ok
}

// Remove takes the result out of the store and resets it
func (st *Store) Remove(id int) bool {
	r, ok := st.results[id]
	if !ok {
		return false
	}
	delete(st.results, id)
	r.Reset()
	return true
}

// Len returns the number of stored results
func (st *Store) Len() int { return len(st.results) }

// IDs returns the ids of all stored results in ascending order
func (st *Store) IDs() []int {
	ids := make([]int, 0, len(st.results))
	for id := range st.results {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Close removes and resets every stored result. Add fails afterwards.
func (st *Store) Close() {
	for _, id := range st.IDs() {
		st.Remove(id)
	}
	st.closed = true
}
