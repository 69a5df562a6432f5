package service

import "lexihub/internal/models"

// isElevated reports whether the user holds one of the roles allowed to
// modify content they do not own.
func isElevated(user *models.User) bool {
	return user != nil && (user.Role == models.RoleAdmin || user.Role == models.RoleVerifiedTranslator)
}

func isAdmin(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// canModify is the owner-or-elevated rule used for entry and translation
// updates.
func canModify(actor *models.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || isElevated(actor)
}

// canDelete is stricter: owner or admin, verified translators cannot delete
// other people's content.
func canDelete(actor *models.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || isAdmin(actor)
}
