package routes

import "sync"

// Navigator tracks the current location and the history stack.
type Navigator struct {
	mu      sync.Mutex
	history []Entry
	hard    bool
}

// Entry is one history item.
type Entry struct {
	Path string
	From string
}

func NewNavigator(start string) *Navigator {
	return &Navigator{history: []Entry{{Path: Clean(start)}}}
}

func (n *Navigator) Apply(in Intent) {
	if in.IsZero() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	e := Entry{Path: Clean(in.To), From: in.From}
	if in.Replace && len(n.history) > 0 {
		n.history[len(n.history)-1] = e
	} else {
		n.history = append(n.history, e)
	}
	if in.Hard {
		n.hard = true
	}
}

func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1].Path
}

// From returns the return target recorded with the current entry.
func (n *Navigator) From() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1].From
}

// Back pops the current entry. The first entry is never popped.
func (n *Navigator) Back() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) > 1 {
		n.history = n.history[:len(n.history)-1]
	}
	return n.history[len(n.history)-1].Path
}

func (n *Navigator) History() []Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Entry(nil), n.history...)
}

// TakeHardReload reports whether a hard navigation happened since the last
// call, and resets the flag.
func (n *Navigator) TakeHardReload() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	h := n.hard
	n.hard = false
	return h
}
