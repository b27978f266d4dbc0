package models

// Message is a single channel post as served by the feed endpoint.
// Identity is positional: two messages are the same only if every field matches.
type Message struct {
	Content   string `json:"content"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
}

// Feed is the titled, ordered message list for one channel.
type Feed struct {
	Title    string    `json:"title,omitempty"`
	Messages []Message `json:"messages"`
}

// Len returns the number of messages, treating a nil feed as empty
func (f *Feed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Messages)
}

// SameMessages reports whether both feeds hold the same message sequence by value.
// Titles are not compared.
func (f *Feed) SameMessages(other *Feed) bool {
	if f.Len() != other.Len() {
		return false
	}
	for i := 0; i < f.Len(); i++ {
		if f.Messages[i] != other.Messages[i] {
			return false
		}
	}
	return true
}

// At returns the message at index i and whether it exists
func (f *Feed) At(i int) (Message, bool) {
	if i < 0 || i >= f.Len() {
		return Message{}, false
	}
	return f.Messages[i], true
}
