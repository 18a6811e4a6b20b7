package constants

// Context keys for the authenticated principal.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

const MinPasswordLength = 3
