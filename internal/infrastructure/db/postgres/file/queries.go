package file

const (
	fileColumns = `id, name, type, org_id, storage_id, created_at`

	InsertFile = `
		INSERT INTO files (name, type, org_id, storage_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + fileColumns + `
	`
	SelectFileByID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1
	`
	SelectOrgFiles = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE org_id = $1
		ORDER BY seq
	`
	DeleteFileByID = `DELETE FROM files WHERE id = $1`
)
