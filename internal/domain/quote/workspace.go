package quote

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Workspace holds the drafts being edited. Nothing in it is persisted;
// discarding a draft simply drops it.
type Workspace struct {
	mu     sync.Mutex
	drafts map[int64]*Draft
	nextID int64
	now    func() time.Time
}

func NewWorkspace() *Workspace {
	return &Workspace{drafts: make(map[int64]*Draft), nextID: 1, now: time.Now}
}

// Open registers d and returns a copy carrying its workspace id.
func (w *Workspace) Open(d *Draft) Draft {
	w.mu.Lock()
	defer w.mu.Unlock()

	d.ID = w.nextID
	d.UpdatedAt = w.now()
	w.nextID++
	w.drafts[d.ID] = d
	return d.Clone()
}

func (w *Workspace) Get(id int64) (Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.drafts[id]
	if !ok {
		return Draft{}, fmt.Errorf("%w: %d", ErrDraftNotFound, id)
	}
	return d.Clone(), nil
}

// Edit runs fn against the live draft. A failing fn leaves the draft as fn
// left it; callers are expected to validate before mutating.
func (w *Workspace) Edit(id int64, fn func(d *Draft) error) (Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.drafts[id]
	if !ok {
		return Draft{}, fmt.Errorf("%w: %d", ErrDraftNotFound, id)
	}
	if err := fn(d); err != nil {
		return Draft{}, err
	}
	d.UpdatedAt = w.now()
	return d.Clone(), nil
}

func (w *Workspace) Discard(id int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.drafts[id]; !ok {
		return fmt.Errorf("%w: %d", ErrDraftNotFound, id)
	}
	delete(w.drafts, id)
	return nil
}

func (w *Workspace) List() []Draft {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Draft, 0, len(w.drafts))
	for _, d := range w.drafts {
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
