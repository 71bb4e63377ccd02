// Package alertview holds the pure read/selection state over an alert
// list. It performs no I/O: the service layer feeds it fresh lists from
// the backend and submits selected ids for batch mutation. Read state is
// backend-owned; this package never flips is_read locally.
package alertview

import "github.com/mlehnert/pf-dashboard-bff-go/internal/domain"

// State is the in-memory view state for one user's alert list: the last
// fetched alerts plus the set of currently selected ids. Not safe for
// concurrent use; the owning service serializes access.
type State struct {
	alerts   []domain.Alert
	selected map[string]struct{}
}

// NewState creates an empty alert view state.
func NewState() *State {
	return &State{selected: make(map[string]struct{})}
}

// Alerts returns the current alert list.
func (s *State) Alerts() []domain.Alert {
	return s.alerts
}

// ToggleSelect adds the id to the selection if absent, removes it if
// present. No duplicates, no backend call.
func (s *State) ToggleSelect(id string) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// IsSelected reports whether the id is currently selected.
func (s *State) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selected ids. Order is unspecified.
func (s *State) Selected() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

// Replace installs a freshly fetched alert list and clears the selection.
// Used for user-triggered reloads and filter changes, where the previous
// selection no longer maps onto what is shown.
func (s *State) Replace(alerts []domain.Alert) {
	s.alerts = alerts
	s.selected = make(map[string]struct{})
}

// SyncAfterMutation installs the refetched list after a successful batch
// mark-as-read and removes exactly the submitted ids from the selection.
// Ids selected while the request was in flight stay selected; this
// tolerates the accepted race between selection and submission.
func (s *State) SyncAfterMutation(alerts []domain.Alert, submitted []string) {
	s.alerts = alerts
	for _, id := range submitted {
		delete(s.selected, id)
	}
}

// UnreadCount derives the number of unread alerts from the list. Always
// computed, never cached, so it cannot diverge from the rows.
func (s *State) UnreadCount() int {
	n := 0
	for _, a := range s.alerts {
		if !a.IsRead {
			n++
		}
	}
	return n
}

// View builds the serializable snapshot of the current state.
func (s *State) View() domain.AlertListView {
	alerts := s.alerts
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return domain.AlertListView{
		Alerts:      alerts,
		UnreadCount: s.UnreadCount(),
		Selected:    s.Selected(),
	}
}
