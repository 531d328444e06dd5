package policy

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"entryledger/internal/domain"
)

type EngineSuite struct {
	suite.Suite
	engine *Engine
}

func (s *EngineSuite) SetupTest() {
	s.engine = NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) TestAdminBypass() {
	decision, err := s.engine.Evaluate(domain.RoleAdmin, nil, Permission{Resource: "data", Action: "create"})
	s.Require().NoError(err)
	s.True(decision.Allowed)
	s.Equal(AdminScope, decision.MatchedScope)
}

func (s *EngineSuite) TestDefaultDeny() {
	s.Run("unknown role is an error", func() {
		_, err := s.engine.Evaluate("intruder", []string{"data:create"}, Permission{Resource: "data", Action: "create"})
		s.Require().Error(err)
		s.Equal(domain.KindUnknownRole, domain.KindOf(err))
	})

	s.Run("role without a matching scope is denied", func() {
		decision, err := s.engine.Evaluate(domain.RoleOperator, ScopesForRole(domain.RoleOperator),
			Permission{Resource: "data", Action: "confirm"})
		s.Require().NoError(err)
		s.False(decision.Allowed)
		s.Contains(decision.Reason, "no scope grants data:confirm")
	})

	s.Run("configured scope missing from the grant is denied", func() {
		decision, err := s.engine.Evaluate(domain.RoleOperator, []string{"data:read:own"},
			Permission{Resource: "data", Action: "create"})
		s.Require().NoError(err)
		s.False(decision.Allowed)
	})
}

func (s *EngineSuite) TestOperatorScopes() {
	granted := ScopesForRole(domain.RoleOperator)

	s.Run("create is allowed", func() {
		decision, err := s.engine.Evaluate(domain.RoleOperator, granted,
			Permission{Resource: "data", Action: "create"})
		s.Require().NoError(err)
		s.True(decision.Allowed)
		s.Equal("data:create", decision.MatchedScope)
	})

	s.Run("read requires an owner id to be present", func() {
		decision, err := s.engine.Evaluate(domain.RoleOperator, granted,
			Permission{Resource: "data", Action: "read"})
		s.Require().NoError(err)
		s.False(decision.Allowed)

		decision, err = s.engine.Evaluate(domain.RoleOperator, granted,
			Permission{Resource: "data", Action: "read", OwnerID: "some-user"})
		s.Require().NoError(err)
		s.True(decision.Allowed)
		s.Equal("data:read:own", decision.MatchedScope)
	})

	s.Run("update is limited to unconfirmed entries", func() {
		decision, err := s.engine.Evaluate(domain.RoleOperator, granted, Permission{
			Resource: "data", Action: "update",
			OwnerID: "some-user", ResourceStatus: ConstraintUnconfirmed,
		})
		s.Require().NoError(err)
		s.True(decision.Allowed)

		decision, err = s.engine.Evaluate(domain.RoleOperator, granted, Permission{
			Resource: "data", Action: "update",
			OwnerID: "some-user", ResourceStatus: "confirmed",
		})
		s.Require().NoError(err)
		s.False(decision.Allowed)
		s.Contains(decision.Reason, "filters or constraints not satisfied")
	})
}

func (s *EngineSuite) TestSupervisorScopes() {
	granted := ScopesForRole(domain.RoleSupervisor)

	s.Run("can confirm and read everything", func() {
		for _, action := range []string{"confirm", "reject", "correct", "read"} {
			decision, err := s.engine.Evaluate(domain.RoleSupervisor, granted,
				Permission{Resource: "data", Action: action})
			s.Require().NoError(err)
			s.True(decision.Allowed, action)
		}
	})

	s.Run("cannot create entries", func() {
		decision, err := s.engine.Evaluate(domain.RoleSupervisor, granted,
			Permission{Resource: "data", Action: "create"})
		s.Require().NoError(err)
		s.False(decision.Allowed)
	})
}

func (s *EngineSuite) TestAuditorScopes() {
	granted := ScopesForRole(domain.RoleAuditor)

	s.Run("reads audit trails and events", func() {
		for _, perm := range []Permission{
			{Resource: "audit", Action: "read"},
			{Resource: "events", Action: "read"},
			{Resource: "reports", Action: "read"},
			{Resource: "data", Action: "read"},
		} {
			decision, err := s.engine.Evaluate(domain.RoleAuditor, granted, perm)
			s.Require().NoError(err)
			s.True(decision.Allowed, perm.Resource)
		}
	})

	s.Run("cannot mutate data", func() {
		for _, action := range []string{"create", "update", "confirm", "reject"} {
			decision, err := s.engine.Evaluate(domain.RoleAuditor, granted,
				Permission{Resource: "data", Action: action})
			s.Require().NoError(err)
			s.False(decision.Allowed, action)
		}
	})
}
