package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entryledger/internal/domain"
)

func TestLookupTransition(t *testing.T) {
	t.Run("covers every legal edge", func(t *testing.T) {
		legal := []struct {
			from      domain.EntryState
			eventType string
			to        domain.EntryState
			role      string
		}{
			{domain.StateDraft, domain.EventDataSubmitted, domain.StateSubmitted, domain.RoleOperator},
			{domain.StateSubmitted, domain.EventDataConfirmed, domain.StateConfirmed, domain.RoleSupervisor},
			{domain.StateSubmitted, domain.EventDataRejected, domain.StateRejected, domain.RoleSupervisor},
			{domain.StateSubmitted, domain.EventDataCancelled, domain.StateCancelled, domain.RoleOperator},
			{domain.StateConfirmed, domain.EventDataCorrected, domain.StateCorrected, domain.RoleSupervisor},
			{domain.StateRejected, domain.EventDataCorrected, domain.StateCorrected, domain.RoleSupervisor},
			{domain.StateRejected, domain.EventDataCancelled, domain.StateCancelled, domain.RoleOperator},
			{domain.StateCorrected, domain.EventDataSubmitted, domain.StateSubmitted, domain.RoleSupervisor},
			{domain.StateCorrected, domain.EventDataConfirmed, domain.StateConfirmed, domain.RoleSupervisor},
		}
		require.Len(t, transitions, len(legal))

		for _, edge := range legal {
			tr, ok := LookupTransition(edge.from, edge.eventType)
			require.True(t, ok, "%s + %s", edge.from, edge.eventType)
			assert.Equal(t, edge.to, tr.To)
			assert.Equal(t, edge.role, tr.RequiredRole)
		}
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		for _, eventType := range []string{
			domain.EventDataSubmitted, domain.EventDataConfirmed, domain.EventDataRejected,
			domain.EventDataCorrected, domain.EventDataCancelled,
		} {
			_, ok := LookupTransition(domain.StateCancelled, eventType)
			assert.False(t, ok, eventType)
		}
	})

	t.Run("rejects edges absent from the table", func(t *testing.T) {
		_, ok := LookupTransition(domain.StateDraft, domain.EventDataConfirmed)
		assert.False(t, ok)
		_, ok = LookupTransition(domain.StateConfirmed, domain.EventDataConfirmed)
		assert.False(t, ok)
		_, ok = LookupTransition(domain.StateDraft, domain.EventDataCancelled)
		assert.False(t, ok)
	})
}

func TestValidateTransition(t *testing.T) {
	operator := domain.Actor{ID: uuid.New(), Role: domain.RoleOperator, Username: "op"}
	supervisor := domain.Actor{ID: uuid.New(), Role: domain.RoleSupervisor, Username: "sup"}
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin, Username: "root"}

	t.Run("allows the required role", func(t *testing.T) {
		_, err := validateTransition(domain.StateDraft, domain.EventDataSubmitted, operator)
		assert.NoError(t, err)
	})

	t.Run("rejects the wrong role", func(t *testing.T) {
		_, err := validateTransition(domain.StateSubmitted, domain.EventDataConfirmed, operator)
		require.Error(t, err)
		assert.Equal(t, domain.KindUnauthorizedRole, domain.KindOf(err))
	})

	t.Run("admin satisfies any role requirement", func(t *testing.T) {
		_, err := validateTransition(domain.StateDraft, domain.EventDataSubmitted, admin)
		assert.NoError(t, err)
		_, err = validateTransition(domain.StateSubmitted, domain.EventDataConfirmed, admin)
		assert.NoError(t, err)
	})

	t.Run("illegal edge outranks role check", func(t *testing.T) {
		_, err := validateTransition(domain.StateConfirmed, domain.EventDataConfirmed, supervisor)
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
	})
}
