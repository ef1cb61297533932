package services

import "shipping/internal/core/domain/model/draft"

// ContactAction is what the contact resolver has to do for one side.
type ContactAction int

const (
	ContactSkip ContactAction = iota
	ContactCreate
	ContactUpdate
)

func (a ContactAction) String() string {
	switch a {
	case ContactCreate:
		return "create"
	case ContactUpdate:
		return "update"
	default:
		return "skip"
	}
}

// ContactPlanner decides per contact side: nothing unless Save is set, then
// an update for a known contact and a create otherwise.
type ContactPlanner struct{}

func NewContactPlanner() ContactPlanner {
	return ContactPlanner{}
}

func (ContactPlanner) Plan(c draft.ContactDraft) ContactAction {
	switch {
	case !c.Save:
		return ContactSkip
	case c.IsKnown():
		return ContactUpdate
	default:
		return ContactCreate
	}
}
