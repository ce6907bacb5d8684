package file

import (
	"file-drive-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		ID:          fDomain.ID,
		Name:        fDomain.Name,
		Type:        string(fDomain.Type),
		OrgID:       fDomain.OrgID,
		StorageID:   fDomain.StorageID,
		IsFavorited: fDomain.IsFavorited,
		DownloadURL: fDomain.DownloadURL,
		CreatedAt:   fDomain.CreatedAt,
	}

	return f
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToResponseUploadURL(t file.UploadTicket) UploadURL {
	return UploadURL{
		UploadURL: t.URL,
		StorageID: t.StorageID,
		ExpiresAt: t.ExpiresAt,
	}
}

func ToDomainFile(orgID string, r CreateRequest) file.File {
	return file.File{
		Name:      r.Name,
		Type:      file.Type(r.Type),
		OrgID:     orgID,
		StorageID: r.StorageID,
	}
}
