package adminctl

import (
	"sync"

	arrays "github.com/adam-hanna/arrayOperations"
	"tideland.dev/go/slices"
)

// Phase is the lifecycle of a list fetch.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// MutationPhase is the lifecycle of a mutating operation (create, update,
// delete). It is tracked independently of the list-fetch Phase so that a
// failed form submit never disturbs an already loaded list.
type MutationPhase string

const (
	MutationIdle       MutationPhase = "idle"
	MutationSubmitting MutationPhase = "submitting"
	MutationSucceeded  MutationPhase = "succeeded"
	MutationFailed     MutationPhase = "failed"
)

// Pagination mirrors the API's paging fields for a cached list page.
type Pagination struct {
	TotalDocs  int
	Limit      int
	Page       int
	TotalPages int
}

// Entity is anything with a server-assigned id, unique within a cached page.
type Entity interface {
	EntityID() string
}

// listCore owns the client-side cache of one remote collection: the current
// page of items, pagination counters, the add/edit modal, and the
// multi-select checkbox set. It is shared by the Article and AutoDealership
// state machines. The mutex is needed because bulk deletion fans out over
// goroutines; everything else runs on sequential dispatch.
type listCore[E Entity] struct {
	mu sync.Mutex

	phase  Phase
	errMsg string

	mutation MutationPhase
	mutErr   string

	items  []E
	paging Pagination

	modalOpen   bool
	selected    *E
	selectedIDs []string
}

func newListCore[E Entity](limit int) listCore[E] {
	return listCore[E]{
		phase:    PhaseIdle,
		mutation: MutationIdle,
		paging:   Pagination{Limit: limit, Page: 1, TotalPages: 1},
	}
}

// --- fetch transitions ---

func (l *listCore[E]) beginFetch() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseLoading
	l.errMsg = ""
}

// applyFetch replaces the cached page wholesale and clears the selection,
// regardless of what was selected before.
func (l *listCore[E]) applyFetch(items []E, paging Pagination) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseLoaded
	l.errMsg = ""
	l.items = items
	l.paging = paging
	l.selectedIDs = nil
}

// applyFetchError resets the list to an empty, zeroed state so that stale
// items are never shown next to an error banner.
func (l *listCore[E]) applyFetchError(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseFailed
	l.errMsg = msg
	l.items = nil
	l.paging.TotalDocs = 0
	l.paging.TotalPages = 0
	l.paging.Page = 1
	l.selectedIDs = nil
}

// --- mutation transitions ---

func (l *listCore[E]) beginMutation() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mutation = MutationSubmitting
	l.mutErr = ""
}

// applyMutationSuccess closes the modal and clears the edit target. The
// created/updated entity is deliberately not spliced into items: the server
// stays the source of truth and the caller re-fetches.
func (l *listCore[E]) applyMutationSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mutation = MutationSucceeded
	l.mutErr = ""
	l.modalOpen = false
	l.selected = nil
}

// applyMutationError keeps the modal open so user input survives for
// correction.
func (l *listCore[E]) applyMutationError(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mutation = MutationFailed
	l.mutErr = msg
}

// applyDeleted removes the given ids from both the items and the selection,
// and decrements TotalDocs accordingly, floored at zero.
func (l *listCore[E]) applyDeleted(ids []string) {
	if len(ids) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := make([]E, 0, len(l.items))
	for _, item := range l.items {
		if !contains(ids, item.EntityID()) {
			kept = append(kept, item)
		}
	}
	removed := len(l.items) - len(kept)
	l.items = kept
	l.selectedIDs = slices.Subtract(l.selectedIDs, ids)
	l.paging.TotalDocs -= removed
	if l.paging.TotalDocs < 0 {
		l.paging.TotalDocs = 0
	}
	l.mutation = MutationSucceeded
	l.mutErr = ""
}

// --- selection ---

// ToggleSelect flips membership of id in the multi-select set.
func (l *listCore[E]) ToggleSelect(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if contains(l.selectedIDs, id) {
		l.selectedIDs = slices.Subtract(l.selectedIDs, []string{id})
	} else {
		l.selectedIDs = append(l.selectedIDs, id)
	}
}

// ToggleSelectAll selects every currently loaded item (checked) or clears
// the selection (unchecked). Selection is scoped to the loaded page, never
// the full remote collection.
func (l *listCore[E]) ToggleSelectAll(checked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !checked {
		l.selectedIDs = nil
		return
	}
	ids := make([]string, 0, len(l.items))
	for _, item := range l.items {
		ids = append(ids, item.EntityID())
	}
	l.selectedIDs = arrays.Distinct(ids)
}

// ClearSelection empties the multi-select set.
func (l *listCore[E]) ClearSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selectedIDs = nil
}

// --- modal ---

// OpenModal presents the add/edit form. A non-nil entity seeds edit mode,
// nil signals create mode.
func (l *listCore[E]) OpenModal(entity *E) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modalOpen = true
	l.selected = entity
	l.mutation = MutationIdle
	l.mutErr = ""
}

// CloseModal dismisses the form and clears the edit target.
func (l *listCore[E]) CloseModal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modalOpen = false
	l.selected = nil
}

// --- snapshots ---

// Items returns a copy of the currently cached page.
func (l *listCore[E]) Items() []E {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]E, len(l.items))
	copy(out, l.items)
	return out
}

// Pagination returns the current paging counters.
func (l *listCore[E]) Pagination() Pagination {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paging
}

// Phase returns the list-fetch phase.
func (l *listCore[E]) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Err returns the stored list-level error message, if any.
func (l *listCore[E]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Mutation returns the phase of the last mutating operation.
func (l *listCore[E]) Mutation() MutationPhase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mutation
}

// MutationErr returns the stored form-level error message, if any.
func (l *listCore[E]) MutationErr() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mutErr
}

// SelectedIDs returns a copy of the multi-select set.
func (l *listCore[E]) SelectedIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.selectedIDs))
	copy(out, l.selectedIDs)
	return out
}

// IsModalOpen reports whether the add/edit form is presented.
func (l *listCore[E]) IsModalOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.modalOpen
}

// SelectedEntity returns the edit target, or nil in create mode.
func (l *listCore[E]) SelectedEntity() *E {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// loadedIDs returns the ids of the currently cached page.
func (l *listCore[E]) loadedIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.items))
	for _, item := range l.items {
		ids = append(ids, item.EntityID())
	}
	return ids
}

// pageInBounds reports whether a fetch for page should be dispatched at
// all. Out-of-range pages are a no-op rather than an error.
func (l *listCore[E]) pageInBounds(page int) bool {
	if page < 1 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase == PhaseLoaded && l.paging.TotalPages > 0 && page > l.paging.TotalPages {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
