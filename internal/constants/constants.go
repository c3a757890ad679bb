package constants

const (
	// ContextKeyUserID is the gin context key holding the resolved caller identity.
	ContextKeyUserID = "user_id"
	// SessionKeyUserID is the session key caching the verified user ID.
	SessionKeyUserID = "clerk_id"

	// MaxUploadSize is the largest accepted image upload (5 MB).
	MaxUploadSize = 5 * 1024 * 1024
)
