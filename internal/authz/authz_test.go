package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trackline-dev/trackline/internal/models"
)

func ticket(creator, assignee string) models.Ticket {
	return models.Ticket{CreatedByID: creator, AssignedToID: assignee}
}

func memberships(userIDs ...string) []models.ProjectMembership {
	rows := make([]models.ProjectMembership, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.ProjectMembership{UserID: id})
	}
	return rows
}

func TestIsProjectOwner(t *testing.T) {
	project := models.Project{OwnerID: "owner"}

	assert.True(t, IsProjectOwner("owner", project))
	assert.False(t, IsProjectOwner("member", project))
	assert.False(t, IsProjectOwner("", models.Project{}))
}

func TestIsProjectMember(t *testing.T) {
	rows := memberships("alice", "bob")

	assert.True(t, IsProjectMember("alice", rows))
	assert.True(t, IsProjectMember("bob", rows))
	assert.False(t, IsProjectMember("mallory", rows))
	assert.False(t, IsProjectMember("alice", nil))
}

func TestCanEditTicket(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		ticket models.Ticket
		want   bool
	}{
		{"creator can edit", "alice", ticket("alice", "bob"), true},
		{"assignee can edit", "bob", ticket("alice", "bob"), true},
		{"other member cannot edit", "carol", ticket("alice", "bob"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditTicket(tt.userID, tt.ticket))
		})
	}
}

func TestCanChangeStatus(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		ticket models.Ticket
		want   bool
	}{
		{"assignee can move", "bob", ticket("alice", "bob"), true},
		{"creator alone cannot move", "alice", ticket("alice", "bob"), false},
		{"creator who is also assignee can move", "alice", ticket("alice", "alice"), true},
		{"other member cannot move", "carol", ticket("alice", "bob"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanChangeStatus(tt.userID, tt.ticket))
		})
	}
}

func TestCanDeleteTicket(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		ticket models.Ticket
		want   bool
	}{
		{"creator can delete", "alice", ticket("alice", "bob"), true},
		{"assignee cannot delete", "bob", ticket("alice", "bob"), false},
		{"project owner gets nothing for free", "owner", ticket("alice", "bob"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDeleteTicket(tt.userID, tt.ticket))
		})
	}
}

func TestCanAccessTicketDiscussion(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		ticket models.Ticket
		want   bool
	}{
		{"creator may read and post", "alice", ticket("alice", "bob"), true},
		{"assignee may read and post", "bob", ticket("alice", "bob"), true},
		{"other member may not", "carol", ticket("alice", "bob"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessTicketDiscussion(tt.userID, tt.ticket))
		})
	}
}
