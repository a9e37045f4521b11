package refgraph

// PathSet is an insertion-ordered set of reference paths.
type PathSet struct {
	items []string
	seen  map[string]struct{}
}

// NewPathSet returns an empty set.
func NewPathSet() *PathSet {
	return &PathSet{seen: make(map[string]struct{})}
}

// Add appends p unless it is already present. It reports whether p was added.
func (s *PathSet) Add(p string) bool {
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.items = append(s.items, p)
	return true
}

// Has reports whether p is in the set.
func (s *PathSet) Has(p string) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of paths.
func (s *PathSet) Len() int { return len(s.items) }

// Values returns the paths in insertion order.
func (s *PathSet) Values() []string {
	return append([]string(nil), s.items...)
}
