package consultation

import (
	"log"
	"sync"

	"github.com/ccsfp-clinic/clinic-gateway/internal/state"
)

// View identifies the files panel's current mode. The three are mutually
// exclusive; the preview overlay can sit atop any of them.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewEdit
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	case ViewEdit:
		return "edit"
	default:
		return "list"
	}
}

// Views drives the list/detail/edit transitions for consultation records.
// The edit form works on a clone of the cached record; the cache itself is
// only ever changed by a refresh, so cancelling an edit truly discards it.
type Views struct {
	cache *Cache
	app   *state.AppState

	mu      sync.Mutex
	view    View
	draft   *Record
	preview bool
}

func NewViews(cache *Cache, app *state.AppState) *Views {
	return &Views{cache: cache, app: app}
}

// Current returns the active view.
func (v *Views) Current() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.view
}

// ShowList returns to the list view. The selection survives a plain "back";
// only delete clears it.
func (v *Views) ShowList() {
	v.mu.Lock()
	v.view = ViewList
	v.draft = nil
	v.preview = false
	v.mu.Unlock()
	v.app.ActivateSection(state.SectionFiles)
}

// ClearAndShowList drops the selection before returning to the list,
// used after a delete where the selected record no longer exists.
func (v *Views) ClearAndShowList() {
	v.app.ClearSelection()
	v.ShowList()
}

// ShowDetail opens the record at index read-only. An out-of-range index is
// ignored with a diagnostic.
func (v *Views) ShowDetail(index int) {
	if _, ok := v.cache.Get(index); !ok {
		log.Printf("No consultation record at index %d", index)
		return
	}

	v.app.Select(index)
	v.mu.Lock()
	v.view = ViewDetail
	v.draft = nil
	v.preview = false
	v.mu.Unlock()
	v.app.ActivateSection(state.SectionFiles)
}

// ShowEdit opens the edit form pre-populated from the selected record. The
// form edits a clone; nothing touches the cache until the update succeeds
// and triggers a re-fetch. With no selection this is a no-op.
func (v *Views) ShowEdit() {
	idx, ok := v.app.Selected()
	if !ok {
		log.Printf("No consultation record selected to edit")
		return
	}
	rec, ok := v.cache.Get(idx)
	if !ok {
		log.Printf("Selected consultation index %d out of range", idx)
		return
	}

	draft := rec.Clone()
	v.mu.Lock()
	v.view = ViewEdit
	v.draft = &draft
	v.mu.Unlock()
	v.app.ActivateSection(state.SectionFiles)
}

// CancelEdit discards the draft and re-derives the detail view from the
// untouched cached record.
func (v *Views) CancelEdit() {
	idx, ok := v.app.Selected()
	if !ok {
		v.ShowList()
		return
	}
	v.mu.Lock()
	v.draft = nil
	v.mu.Unlock()
	v.ShowDetail(idx)
}

// Draft returns the in-progress edit copy.
func (v *Views) Draft() (*Record, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return nil, false
	}
	return v.draft, true
}

// ApplyDraft writes submitted form values over the draft.
func (v *Views) ApplyDraft(in FormInput) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		log.Printf("No edit draft to apply form values to")
		return false
	}
	in.Apply(v.draft)
	return true
}

// SelectedRecord returns the cached record under the current selection.
func (v *Views) SelectedRecord() (Record, bool) {
	idx, ok := v.app.Selected()
	if !ok {
		return Record{}, false
	}
	return v.cache.Get(idx)
}

// OpenPreview shows the print-style overlay for the selected record.
// Without a selection it is a no-op with a diagnostic.
func (v *Views) OpenPreview() {
	if _, ok := v.SelectedRecord(); !ok {
		log.Printf("No consultation record selected to preview")
		return
	}
	v.mu.Lock()
	v.preview = true
	v.mu.Unlock()
}

// ClosePreview hides the overlay.
func (v *Views) ClosePreview() {
	v.mu.Lock()
	v.preview = false
	v.mu.Unlock()
}

// PreviewOpen reports whether the overlay is showing.
func (v *Views) PreviewOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.preview
}
