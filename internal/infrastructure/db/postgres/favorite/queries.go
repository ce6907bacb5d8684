package favorite

const (
	SelectUserFavorites = `
		SELECT id, user_id, org_id, file_id, created_at
		FROM favorites
		WHERE user_id = $1 AND org_id = $2
	`
	// LockFavorite serializes toggles of the same (user, file) pair until the
	// surrounding transaction ends.
	LockFavorite   = `SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))`
	DeleteFavorite = `
		DELETE FROM favorites
		WHERE user_id = $1 AND org_id = $2 AND file_id = $3
	`
	InsertFavorite = `
		INSERT INTO favorites (user_id, org_id, file_id)
		VALUES ($1, $2, $3)
	`
)
