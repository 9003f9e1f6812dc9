package model

// MemberRole is one role attached to a provider member. Role ids in the
// reserved "stytch_" namespace are provider-internal and are stripped
// before member data leaves the API.
type MemberRole struct {
	RoleID string `json:"role_id"`
}

// Member mirrors the provider's member object for the fields this app
// surfaces on the account page.
type Member struct {
	MemberID     string       `json:"member_id"`
	Name         string       `json:"name"`
	EmailAddress string       `json:"email_address"`
	Status       string       `json:"status"`
	Roles        []MemberRole `json:"roles"`
}
