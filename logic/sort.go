package logic

// Sort is a small integer id for a type of term. A rigid sort denotes a
// finite enumerated domain where every ground term of that sort is equal
// to some name; a non-rigid sort is open-world.
type Sort struct {
	id    int32
	rigid bool
}

// Rigid reports whether every ground term of s is equated with a name.
func (s Sort) Rigid() bool { return s.rigid }

func (s Sort) id32() int32 { return s.id }

// newSort allocates a fresh sort id. Called only from Context.NewSort.
func newSort(id int32, rigid bool) Sort {
	return Sort{id: id, rigid: rigid}
}
