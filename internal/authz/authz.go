// Package authz derives permissions from relationships between the acting
// user and the target resource: project owner, project member, ticket
// creator, ticket assignee. Every mutating handler consults these predicates
// instead of inlining its own checks.
package authz

import (
	"github.com/trackline-dev/trackline/internal/models"
)

// IsProjectOwner reports whether the user may update or delete the project.
func IsProjectOwner(userID string, project models.Project) bool {
	return project.OwnerID == userID
}

// IsProjectMember reports whether the user appears in the project's
// membership rows. Membership is required to create or list tickets within
// a project and to be a valid assignment target.
func IsProjectMember(userID string, memberships []models.ProjectMembership) bool {
	for _, membership := range memberships {
		if membership.UserID == userID {
			return true
		}
	}
	return false
}

// CanEditTicket reports whether the user may change the ticket's title,
// description or priority. Creator and assignee both qualify.
func CanEditTicket(userID string, ticket models.Ticket) bool {
	return ticket.CreatedByID == userID || ticket.AssignedToID == userID
}

// CanChangeStatus reports whether the user may move the ticket between
// workflow columns. Only the assignee qualifies.
func CanChangeStatus(userID string, ticket models.Ticket) bool {
	return ticket.AssignedToID == userID
}

// CanDeleteTicket reports whether the user may delete the ticket. Only the
// creator qualifies; project ownership grants nothing here.
func CanDeleteTicket(userID string, ticket models.Ticket) bool {
	return ticket.CreatedByID == userID
}

// CanAccessTicketDiscussion reports whether the user may read or post
// comments on the ticket. Creator and assignee both qualify; one predicate
// governs both directions so the rule cannot drift.
func CanAccessTicketDiscussion(userID string, ticket models.Ticket) bool {
	return ticket.CreatedByID == userID || ticket.AssignedToID == userID
}
