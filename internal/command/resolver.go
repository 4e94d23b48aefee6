package command

import (
	"github.com/atomicstack/tabfm/internal/logging/events"
)

// Outcome classifies what a key press did to the resolver.
type Outcome int

const (
	// Pending means the keys so far form a chord prefix.
	Pending Outcome = iota
	// Execute means a leaf was reached; Resolution.Command is set.
	Execute
	// Aborted means escape cancelled the chord.
	Aborted
	// Unknown means the key has no binding at the current depth.
	Unknown
)

// Resolution is the result of feeding one key.
type Resolution struct {
	Outcome Outcome
	Command Command
	Options []Option
	Keys    []string
}

// Resolver walks the keymap one key at a time. It holds the current level and
// the keys accumulated so far, and resets after anything but Pending.
type Resolver struct {
	keymap *Keymap
	node   *Node
	keys   []string
}

// NewResolver returns a resolver at the root of km.
func NewResolver(km *Keymap) *Resolver {
	return &Resolver{keymap: km, node: km.Root()}
}

// Pending reports whether a chord is in progress.
func (r *Resolver) Pending() bool { return len(r.keys) > 0 }

// Keys returns the keys of the chord in progress.
func (r *Resolver) Keys() []string { return append([]string(nil), r.keys...) }

// Options lists the continuations of the chord in progress.
func (r *Resolver) Options() []Option {
	if !r.Pending() {
		return nil
	}
	return r.node.Options()
}

// Reset abandons any chord in progress.
func (r *Resolver) Reset() {
	r.node = r.keymap.Root()
	r.keys = nil
}

// Feed advances the resolver by one input code.
func (r *Resolver) Feed(code string) Resolution {
	code = NormalizeKey(code)
	keys := append(r.Keys(), code)
	if code == EscapeKey {
		r.Reset()
		events.Keymap.Abort(keys)
		return Resolution{Outcome: Aborted, Keys: keys}
	}
	next, ok := r.node.Children[code]
	if !ok {
		r.Reset()
		events.Keymap.Unknown(keys)
		return Resolution{Outcome: Unknown, Keys: keys}
	}
	if next.Leaf() {
		r.Reset()
		return Resolution{Outcome: Execute, Command: next.Command, Keys: keys}
	}
	r.node = next
	r.keys = keys
	opts := next.Options()
	events.Keymap.Chord(keys, len(opts))
	return Resolution{Outcome: Pending, Options: opts, Keys: keys}
}
