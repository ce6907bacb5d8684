package webhook

import "encoding/json"

const (
	EventUserCreated       = "user.created"
	EventUserUpdated       = "user.updated"
	EventMembershipCreated = "organizationMembership.created"
	EventMembershipDeleted = "organizationMembership.deleted"
)

type (
	Event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	UserData struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
	}
	MembershipData struct {
		Organization struct {
			ID string `json:"id"`
		} `json:"organization"`
		PublicUserData struct {
			UserID string `json:"user_id"`
		} `json:"public_user_data"`
	}
)
