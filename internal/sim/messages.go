package sim

// Message is one line of user-facing feedback with a limited lifetime.
type Message struct {
	Text     string
	Created  float64 // sim time, s
	Duration float64 // s
}

// Expired reports whether the message is past its lifetime at time now.
func (m Message) Expired(now float64) bool {
	return now-m.Created >= m.Duration
}

// MessageBoard holds the active messages. At most one active message carries
// a given text; posting a duplicate while the first is active is a no-op.
type MessageBoard struct {
	duration float64
	active   []Message
}

// NewMessageBoard creates a board whose messages last duration seconds.
func NewMessageBoard(duration float64) *MessageBoard {
	return &MessageBoard{duration: duration}
}

// Post adds text at time now and reports whether a new message was created.
func (mb *MessageBoard) Post(text string, now float64) bool {
	mb.Expire(now)
	for _, m := range mb.active {
		if m.Text == text {
			return false
		}
	}
	mb.active = append(mb.active, Message{Text: text, Created: now, Duration: mb.duration})
	return true
}

// Expire drops messages whose lifetime has elapsed.
func (mb *MessageBoard) Expire(now float64) {
	kept := mb.active[:0]
	for _, m := range mb.active {
		if !m.Expired(now) {
			kept = append(kept, m)
		}
	}
	mb.active = kept
}

// Active returns a copy of the unexpired messages, oldest first.
func (mb *MessageBoard) Active() []Message {
	out := make([]Message, len(mb.active))
	copy(out, mb.active)
	return out
}
