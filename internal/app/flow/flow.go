// Package flow models the portal's single-active-view navigation: exactly one
// view is active at a time, every transition is user-triggered, and the flow
// starts at the landing view with no terminal state.
package flow

import (
	"fmt"

	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
)

// View is one of the portal's top-level screens
type View string

const (
	ViewLanding        View = "landing"
	ViewForm           View = "form"
	ViewSuccess        View = "success"
	ViewAdminLogin     View = "adminLogin"
	ViewAdminDashboard View = "adminDashboard"
)

// Event is a user-triggered navigation action
type Event string

const (
	EventChooseInstitution Event = "chooseInstitution" // landing -> form
	EventSubmit            Event = "submit"            // form -> success
	EventCancel            Event = "cancel"            // form -> landing
	EventBack              Event = "back"              // success/adminLogin -> landing
	EventOpenAdminLogin    Event = "openAdminLogin"
	EventLoginSucceeded    Event = "loginSucceeded" // adminLogin -> adminDashboard
	EventLogout            Event = "logout"         // adminDashboard -> landing
)

// transitions is the full navigation table. Anything absent is rejected.
var transitions = map[View]map[Event]View{
	ViewLanding: {
		EventChooseInstitution: ViewForm,
		EventOpenAdminLogin:    ViewAdminLogin,
	},
	ViewForm: {
		EventSubmit: ViewSuccess,
		EventCancel: ViewLanding,
	},
	ViewSuccess: {
		EventBack: ViewLanding,
	},
	ViewAdminLogin: {
		EventLoginSucceeded: ViewAdminDashboard,
		EventBack:           ViewLanding,
	},
	ViewAdminDashboard: {
		EventLogout: ViewLanding,
	},
}

// Initial returns the view every flow starts in
func Initial() View {
	return ViewLanding
}

// Next resolves one transition. A failed login is not an event: the flow
// stays on the login view and nothing is mutated.
func Next(current View, event Event) (View, error) {
	if next, ok := transitions[current][event]; ok {
		return next, nil
	}
	return current, fmt.Errorf("%w: %q on view %q", apperrors.ErrInvalidTransition, event, current)
}
