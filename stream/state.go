package stream

import "strconv"

// State provides minimal stack/state/path management for the encoder.
// It validates event order (keys only inside mappings, values only
// after keys, balanced begin/end) and tracks the current path.
type State struct {
	stack []item
}

type item struct {
	mapping bool
	key     string
	n       int
	hasKey  bool
}

// NewState creates a new State for tracking structure state.
func NewState() *State {
	return &State{}
}

func (s *State) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *State) current() *item {
	return &s.stack[len(s.stack)-1]
}

// ProcessEvent processes an event and updates state/path tracking.
// Call this for each event in order.
func (s *State) ProcessEvent(event *Event) error {
	switch event.Type {
	case EventBeginMapping:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{mapping: true, n: -1})
	case EventEndMapping:
		if s.Depth() == 0 || !s.current().mapping {
			return &Error{Msg: "end of mapping without begin"}
		}
		if s.current().hasKey {
			return &Error{Msg: "mapping key with no value"}
		}
		s.pop()
	case EventBeginSequence:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{n: -1})
	case EventEndSequence:
		if s.Depth() == 0 || s.current().mapping {
			return &Error{Msg: "end of sequence without begin"}
		}
		s.pop()
	case EventScalar, EventAlias:
		if s.Depth() > 0 && s.current().mapping && !s.current().hasKey {
			// scalar in key position
			cur := s.current()
			cur.hasKey = true
			cur.key = event.Value
			cur.n++
			return nil
		}
		return s.value()
	}
	return nil
}

// value accounts for a value arriving at the current position.
func (s *State) value() error {
	if s.Depth() == 0 {
		return nil
	}
	cur := s.current()
	if cur.mapping {
		if !cur.hasKey {
			return &Error{Msg: "mapping value with no key"}
		}
		cur.hasKey = false
		return nil
	}
	cur.n++
	return nil
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// KeyPending reports whether the next scalar lands in key position.
func (s *State) KeyPending() bool {
	return s.IsInMapping() && !s.current().hasKey
}

// IsInMapping returns true if currently inside a mapping.
func (s *State) IsInMapping() bool {
	return s.Depth() > 0 && s.current().mapping
}

// IsInSequence returns true if currently inside a sequence.
func (s *State) IsInSequence() bool {
	return s.Depth() > 0 && !s.current().mapping
}

// CurrentKey returns the pending mapping key, if any.
func (s *State) CurrentKey() string {
	if s.IsInMapping() {
		return s.current().key
	}
	return ""
}

// CurrentIndex returns the current sequence index, -1 before the
// first element.
func (s *State) CurrentIndex() int {
	if s.IsInSequence() {
		return s.current().n
	}
	return -1
}

// CurrentPath renders the position as a dotted path with sequence
// indices, e.g. "spec.containers[0].name".
func (s *State) CurrentPath() string {
	res := ""
	for i := range s.stack {
		it := &s.stack[i]
		if it.mapping {
			if it.key == "" && !it.hasKey && it.n < 0 {
				continue
			}
			if res != "" {
				res += "."
			}
			res += it.key
			continue
		}
		if it.n >= 0 {
			res += "[" + strconv.Itoa(it.n) + "]"
		}
	}
	return res
}
