package vertex

type entry struct {
	record Record
	index  uint32
}

// Table maps records to the output index they were first assigned.
// Indices are handed out densely in first-seen order.
type Table struct {
	hasher  Hasher
	buckets map[uint64][]entry
	count   uint32
}

// NewTable creates an empty table using h for hashing and equality.
// A nil hasher selects ActiveFields.
func NewTable(h Hasher) *Table {
	if h == nil {
		h = ActiveFields{}
	}
	return &Table{
		hasher:  h,
		buckets: make(map[uint64][]entry),
	}
}

// Lookup returns the index assigned to r, if any.
func (t *Table) Lookup(r Record) (uint32, bool) {
	for _, e := range t.buckets[t.hasher.Hash(r)] {
		if t.hasher.Equal(e.record, r) {
			return e.index, true
		}
	}
	return 0, false
}

// Insert returns the index of r, assigning the next free index when r has
// not been seen. added is true only for a newly assigned index.
func (t *Table) Insert(r Record) (index uint32, added bool) {
	h := t.hasher.Hash(r)
	for _, e := range t.buckets[h] {
		if t.hasher.Equal(e.record, r) {
			return e.index, false
		}
	}
	index = t.count
	t.buckets[h] = append(t.buckets[h], entry{record: r, index: index})
	t.count++
	return index, true
}

// Len returns the number of distinct records.
func (t *Table) Len() int {
	return int(t.count)
}

// Reset empties the table, keeping its hasher.
func (t *Table) Reset() {
	clear(t.buckets)
	t.count = 0
}
