package session

import (
	"encoding/json"
	"fmt"
)

// FlagSet is an insertion-ordered set of flagged question ids. Ids are
// global: they are not scoped to a subject or a practice session.
type FlagSet struct {
	order []string
	index map[string]struct{}
}

// NewFlagSet creates a set holding ids in order, collapsing duplicates and
// dropping empty ids.
func NewFlagSet(ids ...string) *FlagSet {
	fs := &FlagSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		fs.add(id)
	}
	return fs
}

// Has reports whether id is flagged.
func (fs *FlagSet) Has(id string) bool {
	_, ok := fs.index[id]
	return ok
}

// Toggle flags id if absent and unflags it otherwise. It returns whether id
// is flagged afterwards.
func (fs *FlagSet) Toggle(id string) bool {
	if id == "" {
		return false
	}
	if fs.Has(id) {
		fs.remove(id)
		return false
	}
	fs.add(id)
	return true
}

// Len returns the number of flagged ids.
func (fs *FlagSet) Len() int { return len(fs.order) }

// IDs returns the flagged ids in insertion order.
func (fs *FlagSet) IDs() []string {
	out := make([]string, len(fs.order))
	copy(out, fs.order)
	return out
}

// Clone returns an independent copy.
func (fs *FlagSet) Clone() *FlagSet {
	return NewFlagSet(fs.order...)
}

// Equal reports whether both sets hold the same ids, ignoring order.
func (fs *FlagSet) Equal(other *FlagSet) bool {
	if fs.Len() != other.Len() {
		return false
	}
	for _, id := range fs.order {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

func (fs *FlagSet) add(id string) {
	if id == "" || fs.Has(id) {
		return
	}
	fs.index[id] = struct{}{}
	fs.order = append(fs.order, id)
}

func (fs *FlagSet) remove(id string) {
	delete(fs.index, id)
	for i, v := range fs.order {
		if v == id {
			fs.order = append(fs.order[:i:i], fs.order[i+1:]...)
			return
		}
	}
}

// MarshalJSON encodes the set as a JSON array of ids.
func (fs *FlagSet) MarshalJSON() ([]byte, error) {
	ids := fs.order
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// UnmarshalJSON decodes a JSON array of ids.
func (fs *FlagSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("decode flag set: %w", err)
	}
	*fs = *NewFlagSet(ids...)
	return nil
}
