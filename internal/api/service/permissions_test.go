package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/api/models"
)

func TestCanModify(t *testing.T) {
	cases := []struct {
		name    string
		role    models.Role
		actorID string
		ownerID string
		want    bool
	}{
		{"author edits own content", models.RoleUser, "u1", "u1", true},
		{"user cannot edit others", models.RoleUser, "u1", "u2", false},
		{"moderator edits anyone", models.RoleModerator, "m1", "u2", true},
		{"admin edits anyone", models.RoleAdmin, "a1", "u2", true},
		{"moderator edits own", models.RoleModerator, "m1", "m1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModify(tc.role, tc.actorID, tc.ownerID))
		})
	}
}
