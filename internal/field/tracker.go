package field

// Charge is a live point charge. The id is stable for the lifetime of the
// charge and is never reused after removal.
type Charge struct {
	ID    int
	Value float64
	Pos   Vec2
}

// Tracker owns the set of live charges and the queue of pending diffs.
// Every mutation appends exactly one diff; the render loop drains the queue
// once per frame and replays it against the field texture.
type Tracker struct {
	nextID  int
	order   []int
	charges map[int]*Charge
	queue   []Diff
}

func NewTracker() *Tracker {
	return &Tracker{
		charges: make(map[int]*Charge),
	}
}

// Add registers a new charge and queues its add diff. It returns the id
// assigned to the charge.
func (t *Tracker) Add(value float64, pos Vec2) int {
	id := t.nextID
	t.nextID++
	t.charges[id] = &Charge{ID: id, Value: value, Pos: pos}
	t.order = append(t.order, id)
	t.queue = append(t.queue, AddDiff(value, pos))
	return id
}

// Move relocates a charge and queues a move diff carrying both positions.
func (t *Tracker) Move(id int, to Vec2) error {
	c, ok := t.charges[id]
	if !ok {
		return ErrUnknownCharge
	}
	from := c.Pos
	c.Pos = to
	t.queue = append(t.queue, MoveDiff(c.Value, from, to))
	return nil
}

// Remove deletes a charge and queues its remove diff.
func (t *Tracker) Remove(id int) error {
	c, ok := t.charges[id]
	if !ok {
		return ErrUnknownCharge
	}
	delete(t.charges, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.queue = append(t.queue, RemoveDiff(c.Value, c.Pos))
	return nil
}

// Get returns the charge with the given id.
func (t *Tracker) Get(id int) (Charge, bool) {
	c, ok := t.charges[id]
	if !ok {
		return Charge{}, false
	}
	return *c, true
}

// Charges returns the live charges in insertion order.
func (t *Tracker) Charges() []Charge {
	out := make([]Charge, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.charges[id])
	}
	return out
}

// Len reports the number of live charges.
func (t *Tracker) Len() int { return len(t.order) }

// Pending reports the number of queued diffs.
func (t *Tracker) Pending() int { return len(t.queue) }

// Drain returns the queued diffs in the order they were recorded and empties
// the queue. The caller owns the returned slice.
func (t *Tracker) Drain() []Diff {
	q := t.queue
	t.queue = nil
	return q
}

// Clear discards any queued diffs without applying them. Used before a full
// rebuild, where replaying stale diffs would double-count contributions.
func (t *Tracker) Clear() {
	t.queue = nil
}

// RebuildDiffs synthesizes one add diff per live charge, in insertion order.
// Replaying them against a zeroed field reconstructs the full potential.
func (t *Tracker) RebuildDiffs() []Diff {
	out := make([]Diff, 0, len(t.order))
	for _, id := range t.order {
		c := t.charges[id]
		out = append(out, AddDiff(c.Value, c.Pos))
	}
	return out
}
