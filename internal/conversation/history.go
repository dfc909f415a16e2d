package conversation

import (
	"strings"
	"sync"
)

// NoHistorySentinel is returned by RecentAsText when a session has no
// exchanges yet. Prompt templates rely on the literal value.
const NoHistorySentinel = "No previous conversation"

// Message is a single conversation entry.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// History is the ordered conversation history of one session. All mutation is
// append-then-trim; past entries are never edited or reordered. The mutex
// serializes concurrent turns on the same session; separate sessions hold
// separate histories and never contend.
type History struct {
	mu           sync.Mutex
	maxExchanges int
	entries      []Message
}

func newHistory(maxExchanges int) *History {
	return &History{maxExchanges: maxExchanges}
}

// AddExchange appends a (question, answer) pair and trims the history to the
// most recent maxExchanges exchanges, evicting oldest entries first.
func (h *History) AddExchange(question, answer string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries,
		Message{Role: "user", Content: question},
		Message{Role: "assistant", Content: answer},
	)

	if limit := h.maxExchanges * 2; len(h.entries) > limit {
		h.entries = h.entries[len(h.entries)-limit:]
	}
}

// Messages returns a copy of all entries in insertion order.
func (h *History) Messages() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Message, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries (two per exchange).
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// RecentAsText renders the last n exchanges as "User: ..." / "Assistant: ..."
// lines for prompt injection, or NoHistorySentinel when the history is empty.
func (h *History) RecentAsText(n int) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return NoHistorySentinel
	}

	recent := h.entries
	if limit := n * 2; len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	var b strings.Builder
	for i, msg := range recent {
		if i > 0 {
			b.WriteString("\n")
		}
		if msg.Role == "user" {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(msg.Content)
	}
	return b.String()
}

func (h *History) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
