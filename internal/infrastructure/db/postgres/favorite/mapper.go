package favorite

import (
	domain "file-drive-api/internal/domain/favorite"
)

func fromDBModel(model *Favorite) *domain.Favorite {
	return &domain.Favorite{
		ID:     model.ID,
		UserID: model.UserID,
		OrgID:  model.OrgID,
		FileID: model.FileID,

		CreatedAt: model.CreatedAt,
	}
}

func fromDBModels(models *Favorites) domain.Favorites {
	fs := make(domain.Favorites, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
