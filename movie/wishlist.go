package movie

import "sync"

// Wishlist is the session's ordered set of favorite movies. Entries are not
// checked against the catalog.
type Wishlist struct {
	mu      sync.Mutex
	entries []Identity
	index   map[Identity]struct{}
}

func NewWishlist() *Wishlist {
	return &Wishlist{index: make(map[Identity]struct{})}
}

// Add appends id unless it is already present. It reports whether id was added.
func (w *Wishlist) Add(id Identity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.add(id)
}

// Remove deletes id if present. It reports whether id was removed.
func (w *Wishlist) Remove(id Identity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.remove(id)
}

func (w *Wishlist) Contains(id Identity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.index[id]
	return ok
}

// Toggle removes id when present and adds it otherwise, returning the new
// membership state.
func (w *Wishlist) Toggle(id Identity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.remove(id) {
		return false
	}
	return w.add(id)
}

// List returns the entries in insertion order.
func (w *Wishlist) List() []Identity {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Identity, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w *Wishlist) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

func (w *Wishlist) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = nil
	w.index = make(map[Identity]struct{})
}

func (w *Wishlist) add(id Identity) bool {
	if w.index == nil {
		w.index = make(map[Identity]struct{})
	}
	if _, ok := w.index[id]; ok {
		return false
	}
	w.index[id] = struct{}{}
	w.entries = append(w.entries, id)
	return true
}

func (w *Wishlist) remove(id Identity) bool {
	if _, ok := w.index[id]; !ok {
		return false
	}
	delete(w.index, id)
	for i, e := range w.entries {
		if e == id {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			break
		}
	}
	return true
}
