package file

type CreateRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	StorageID string `json:"storage_id"`
}
