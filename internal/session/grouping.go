package session

// GroupKind tells a standalone exercise apart from a superset.
type GroupKind int

const (
	Single GroupKind = iota
	Superset
)

func (k GroupKind) String() string {
	if k == Superset {
		return "superset"
	}
	return "single"
}

// MarshalText renders the kind as "single" or "superset".
func (k GroupKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Group is one display unit: a single exercise, or a superset labelled
// "SS<Number>". Number is zero for Single groups.
type Group struct {
	Kind      GroupKind   `json:"kind"`
	Number    int         `json:"number,omitempty"`
	Exercises []*Exercise `json:"exercises"`
}

// SupersetNumber returns the superset label number, if this is a superset.
func (g Group) SupersetNumber() (int, bool) {
	return g.Number, g.Kind == Superset
}

// GroupExercises partitions exercises into consecutive runs sharing a non-nil
// SupersetID. Runs are numbered from 1 in order of appearance. An ID that
// reappears after a gap starts a new run with a new number. Input order is
// kept as is.
func GroupExercises(exercises []*Exercise) []Group {
	var groups []Group
	var prev *string
	next := 1

	for _, ex := range exercises {
		id := ex.SupersetID
		if id != nil && prev != nil && *id == *prev {
			last := &groups[len(groups)-1]
			last.Exercises = append(last.Exercises, ex)
			continue
		}
		if id == nil {
			groups = append(groups, Group{Kind: Single, Exercises: []*Exercise{ex}})
		} else {
			groups = append(groups, Group{Kind: Superset, Number: next, Exercises: []*Exercise{ex}})
			next++
		}
		prev = id
	}
	return groups
}

// MarkSupersetHeads sets IsSupersetHead on the first member of every
// superset with two or more exercises and clears it everywhere else.
func MarkSupersetHeads(exercises []*Exercise) {
	for _, ex := range exercises {
		ex.IsSupersetHead = false
	}
	for _, g := range GroupExercises(exercises) {
		if g.Kind == Superset && len(g.Exercises) > 1 {
			g.Exercises[0].IsSupersetHead = true
		}
	}
}
