package comments

import (
	"github.com/rs/zerolog"
)

// Mode selects how an adapter persists, fixed at construction and never
// mixed per instance.
type Mode int

const (
	// ModeSelfContained loads from a keyed store at mount and writes
	// back on every mutation.
	ModeSelfContained Mode = iota
	// ModeControlled forwards every mutation to caller-supplied
	// callbacks and holds no authoritative copy.
	ModeControlled
)

// Store is the keyed persistence collaborator for self-contained mode.
type Store interface {
	Load(filePath string) ([]DiffComment, error)
	Save(filePath string, comments []DiffComment) error
}

// Callbacks carries the controlled-mode delegation hooks. Any hook may be
// nil; a nil hook makes the corresponding operation a silent no-op, never
// a local mutation the owner didn't ask for.
type Callbacks struct {
	OnAdd    func(DiffComment)
	OnDelete func(commentID string)
	OnUpdate func(DiffComment)
}

// Adapter manages the comment list for one file path in one of the two
// modes.
type Adapter struct {
	mode     Mode
	filePath string
	store    Store
	cb       Callbacks
	list     []DiffComment
	log      zerolog.Logger
}

// NewSelfContained builds an adapter backed by a keyed store. The list is
// loaded immediately; a missing or corrupt entry degrades to an empty
// list.
func NewSelfContained(store Store, filePath string, log zerolog.Logger) *Adapter {
	a := &Adapter{
		mode:     ModeSelfContained,
		filePath: filePath,
		store:    store,
		log:      log,
	}

	list, err := store.Load(filePath)
	if err != nil {
		log.Warn().Err(err).Str("file", filePath).Msg("comments: load failed, starting empty")
		list = nil
	}
	a.list = list

	return a
}

// NewControlled builds an adapter that delegates every mutation to the
// caller. The caller supplies the comment list via SetComments.
func NewControlled(filePath string, cb Callbacks, log zerolog.Logger) *Adapter {
	return &Adapter{
		mode:     ModeControlled,
		filePath: filePath,
		cb:       cb,
		log:      log,
	}
}

// Mode reports which persistence mode the adapter was built with.
func (a *Adapter) Mode() Mode {
	return a.mode
}

// FilePath returns the file identity this adapter serves.
func (a *Adapter) FilePath() string {
	return a.filePath
}

// Comments returns the current list in creation order.
func (a *Adapter) Comments() []DiffComment {
	return a.list
}

// SetComments replaces the caller-supplied list in controlled mode. In
// self-contained mode the store owns the data and this is ignored.
func (a *Adapter) SetComments(list []DiffComment) {
	if a.mode != ModeControlled {
		return
	}
	a.list = list
}

// Add creates and registers a comment for the range.
func (a *Adapter) Add(c DiffComment) {
	switch a.mode {
	case ModeSelfContained:
		a.list = append(a.list, c)
		a.persist()
	case ModeControlled:
		if a.cb.OnAdd != nil {
			a.cb.OnAdd(c)
		}
	}
	a.log.Debug().
		Str("file", a.filePath).
		Str("id", c.ID).
		Int("start", c.StartLine).
		Int("end", c.EndLine).
		Msg("comments: added")
}

// Delete removes a comment by id. Unknown ids are a no-op. In controlled
// mode a missing delete callback makes this a silent no-op.
func (a *Adapter) Delete(commentID string) {
	switch a.mode {
	case ModeSelfContained:
		kept := a.list[:0]
		for _, c := range a.list {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(a.list) {
			return
		}
		a.list = kept
		a.persist()
	case ModeControlled:
		if a.cb.OnDelete == nil {
			return
		}
		a.cb.OnDelete(commentID)
	}
	a.log.Debug().Str("file", a.filePath).Str("id", commentID).Msg("comments: deleted")
}

// UpdateText changes a comment's text. Range and side never change.
func (a *Adapter) UpdateText(commentID, text string) {
	a.update(commentID, func(c *DiffComment) { c.Text = text })
}

// SetStatus changes a comment's review status.
func (a *Adapter) SetStatus(commentID string, status Status) {
	a.update(commentID, func(c *DiffComment) { c.Status = status })
}

func (a *Adapter) update(commentID string, mutate func(*DiffComment)) {
	switch a.mode {
	case ModeSelfContained:
		for i := range a.list {
			if a.list[i].ID == commentID {
				mutate(&a.list[i])
				a.persist()
				return
			}
		}
	case ModeControlled:
		if a.cb.OnUpdate == nil {
			return
		}
		for _, c := range a.list {
			if c.ID == commentID {
				mutate(&c)
				a.cb.OnUpdate(c)
				return
			}
		}
	}
}

// persist writes the current list back, best-effort: a write failure
// keeps the in-memory list correct for the session.
func (a *Adapter) persist() {
	if err := a.store.Save(a.filePath, a.list); err != nil {
		a.log.Warn().Err(err).Str("file", a.filePath).Msg("comments: save failed")
	}
}
