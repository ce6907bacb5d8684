package file

import (
	domain "file-drive-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		ID:        model.ID,
		Name:      model.Name,
		Type:      domain.Type(model.Type),
		OrgID:     model.OrgID,
		StorageID: model.StorageID,

		CreatedAt: model.CreatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
