package colouring

// TryDecreaseByOne attempts to drop the smallest colour class: every
// orphaned cluster must be reassignable to a surviving colour, either
// directly or by displacing at most one already-coloured cluster into
// another colour. Returns a new Colouring and true on success, or the
// receiver unchanged and false if no such reassignment exists.
func (c *Colouring) TryDecreaseByOne() (*Colouring, bool) {
	if c.NumColours() == 0 {
		return c, false
	}
	ids := c.ColourIDs()
	smallest := ids[0]
	for _, id := range ids[1:] {
		if c.ClassSize(id) < c.ClassSize(smallest) {
			smallest = id
		}
	}

	trial := c.Clone()
	orphans := trial.RemoveColour(smallest)

	remaining := make([]int, 0, len(ids)-1)
	for _, id := range ids {
		if id != smallest {
			remaining = append(remaining, id)
		}
	}

	for _, v := range orphans {
		if !trial.reassign(v, remaining) {
			return c, false
		}
	}
	return trial, true
}

// reassign tries direct placement first, then a single chained move
// that displaces one blocking vertex of a target colour into a
// different colour to make room for v.
func (c *Colouring) reassign(v int, colours []int) bool {
	for _, id := range colours {
		if c.CanPlace(id, v) {
			c.Assign(id, v)
			return true
		}
	}

	for _, id := range colours {
		blockers := c.ConflictsIn(id, v)
		if len(blockers) != 1 {
			continue
		}
		blocker := blockers[0]
		for _, alt := range colours {
			if alt == id {
				continue
			}
			if c.CanPlace(alt, blocker) {
				c.Uncolour(blocker)
				c.Assign(id, v)
				c.Assign(alt, blocker)
				return true
			}
		}
	}
	return false
}
