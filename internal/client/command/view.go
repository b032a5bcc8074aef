package command

import "sync/atomic"

// Panel targets accepted by show and hide.
const (
	PanelDiscussion = "discussion"
	PanelUsers      = "users"
)

// ViewState holds the visibility of the side panels. It is owned by the
// renderer; the dispatcher only flips it.
type ViewState struct {
	discussion atomic.Bool
	users      atomic.Bool
}

func (v *ViewState) ShowDiscussion() bool { return v.discussion.Load() }

func (v *ViewState) ShowUsers() bool { return v.users.Load() }

// Set changes the visibility of target and reports whether target is known.
func (v *ViewState) Set(target string, visible bool) bool {
	switch target {
	case PanelDiscussion:
		v.discussion.Store(visible)
	case PanelUsers:
		v.users.Store(visible)
	default:
		return false
	}
	return true
}
