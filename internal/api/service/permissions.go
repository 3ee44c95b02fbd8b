package service

import "reviewhub/internal/api/models"

// CanModify decides whether an actor may update or delete a review or
// comment: the original author always can, moderators and admins can
// regardless of ownership.
func CanModify(actorRole models.Role, actorID, ownerID string) bool {
	if actorID == ownerID {
		return true
	}
	return actorRole.IsModerator() || actorRole.IsAdmin()
}
