package user

const (
	userColumns = `id, token_identifier, name, image, org_ids, created_at, updated_at`

	SelectUserByToken = `
		SELECT ` + userColumns + `
		FROM users
		WHERE token_identifier = $1
	`
	EnsureUser = `
		INSERT INTO users (token_identifier, name, image)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_identifier) DO NOTHING
	`
	UpsertUser = `
		INSERT INTO users (token_identifier, name, image)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_identifier) DO UPDATE
		SET name = EXCLUDED.name,
		    image = EXCLUDED.image,
		    updated_at = now()
		RETURNING ` + userColumns + `
	`
	AddOrgID = `
		UPDATE users
		SET org_ids = CASE WHEN $2::text = ANY(org_ids) THEN org_ids ELSE array_append(org_ids, $2::text) END,
		    updated_at = now()
		WHERE token_identifier = $1
		RETURNING ` + userColumns + `
	`
	RemoveOrgID = `
		UPDATE users
		SET org_ids = array_remove(org_ids, $2::text),
		    updated_at = now()
		WHERE token_identifier = $1
		RETURNING ` + userColumns + `
	`
)
