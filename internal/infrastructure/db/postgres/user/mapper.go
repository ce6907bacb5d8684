package user

import (
	domain "file-drive-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	orgIDs := model.OrgIDs
	if orgIDs == nil {
		orgIDs = []string{}
	}

	var u = &domain.User{
		ID:              model.ID,
		TokenIdentifier: model.TokenIdentifier,
		Name:            model.Name,
		Image:           model.Image,
		OrgIDs:          orgIDs,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}
