package broadcast

// Cursor is a subscriber's high-water mark: the position of the last
// envelope it handled. The zero Cursor precedes every envelope.
type Cursor struct {
	Timestamp int64
	UpdateID  string
}

// CursorOf is the position of env.
func CursorOf(env Envelope) Cursor {
	return Cursor{Timestamp: env.Timestamp, UpdateID: env.UpdateID}
}

// Precedes reports whether env sorts after c and is therefore still due.
func (c Cursor) Precedes(env Envelope) bool {
	if env.Timestamp != c.Timestamp {
		return env.Timestamp > c.Timestamp
	}
	return env.UpdateID > c.UpdateID
}

// Due returns the envelopes after c, oldest first.
func (c Cursor) Due(envs []Envelope) []Envelope {
	out := make([]Envelope, 0, len(envs))
	for _, e := range envs {
		if c.Precedes(e) {
			out = append(out, e)
		}
	}
	Sort(out)
	return out
}
