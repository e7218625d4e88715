package stats

// Entry is one (stat, value) pair carried by an item.
type Entry struct {
	Stat  ID  `yaml:"stat" json:"id"`
	Value int `yaml:"value" json:"value"`
}

// List is an ordered collection of stat entries as they appear in game
// data. A stat identifier occurs at most once per list.
type List []Entry

// Get returns the value for id.
//
// Postcondition: Returns 0 when the list does not carry id; an absent stat
// and a zero-valued stat are indistinguishable.
func (l List) Get(id ID) int {
	for _, e := range l {
		if e.Stat == id {
			return e.Value
		}
	}
	return 0
}

// Has reports whether the list carries an entry for id.
func (l List) Has(id ID) bool {
	for _, e := range l {
		if e.Stat == id {
			return true
		}
	}
	return false
}

// Set returns a copy of the list with id set to value, replacing an
// existing entry in place or appending a new one.
//
// Postcondition: The receiver is unchanged.
func (l List) Set(id ID, value int) List {
	out := make(List, len(l))
	copy(out, l)
	for i, e := range out {
		if e.Stat == id {
			out[i].Value = value
			return out
		}
	}
	return append(out, Entry{Stat: id, Value: value})
}
