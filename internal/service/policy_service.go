package service

import (
	"time"

	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/auth"
	"github.com/bkit-solutions/LMS-sub000/internal/model"
)

// PolicyGate guards attempt starts and answer submissions: learners may only
// interact with a published test inside its time window. Staff roles bypass
// every check so they can preview unpublished or closed tests.
type PolicyGate interface {
	CheckWindow(test *model.Test, principal *auth.Principal) error
}

type policyGate struct {
	now func() time.Time
}

func NewPolicyGate() PolicyGate {
	return &policyGate{now: time.Now}
}

func (g *policyGate) CheckWindow(test *model.Test, principal *auth.Principal) error {
	if !principal.Role.IsLearner() {
		return nil
	}
	if !test.Published {
		return apperror.Forbidden("Test is not published")
	}
	now := g.now()
	if test.StartTime != nil && now.Before(*test.StartTime) {
		return apperror.Forbidden("Test has not started yet")
	}
	if test.EndTime != nil && now.After(*test.EndTime) {
		return apperror.Forbidden("Test window has closed")
	}
	return nil
}
