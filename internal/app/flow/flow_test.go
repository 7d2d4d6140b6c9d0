package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
)

func TestInitialViewIsLanding(t *testing.T) {
	assert.Equal(t, ViewLanding, Initial())
}

func TestAllowedTransitions(t *testing.T) {
	tests := []struct {
		from  View
		event Event
		to    View
	}{
		{ViewLanding, EventChooseInstitution, ViewForm},
		{ViewLanding, EventOpenAdminLogin, ViewAdminLogin},
		{ViewForm, EventSubmit, ViewSuccess},
		{ViewForm, EventCancel, ViewLanding},
		{ViewSuccess, EventBack, ViewLanding},
		{ViewAdminLogin, EventLoginSucceeded, ViewAdminDashboard},
		{ViewAdminLogin, EventBack, ViewLanding},
		{ViewAdminDashboard, EventLogout, ViewLanding},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			next, err := Next(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.to, next)
		})
	}
}

func TestRejectedTransitionsKeepCurrentView(t *testing.T) {
	tests := []struct {
		from  View
		event Event
	}{
		{ViewLanding, EventSubmit},
		{ViewLanding, EventLogout},
		{ViewForm, EventChooseInstitution},
		{ViewForm, EventLoginSucceeded},
		{ViewSuccess, EventSubmit},
		{ViewAdminDashboard, EventSubmit},
		{ViewAdminLogin, EventChooseInstitution},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			next, err := Next(tt.from, tt.event)
			require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
			assert.Equal(t, tt.from, next, "rejected transition must not move the view")
		})
	}
}

func TestNoTimedTransitionsExist(t *testing.T) {
	// Every target in the table must be reachable only through a named user
	// event; the table has no self-loops and no automatic edges.
	for from, edges := range transitions {
		for event, to := range edges {
			assert.NotEqual(t, from, to, "self transition %q on %q", event, from)
		}
	}
}
