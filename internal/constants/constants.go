package constants

// Session
const (
	SessionCookieName = "warbler_session"
	ContextKeyUserID  = "user_id"
)

// Credential policy
const MinPasswordLength = 6

// Messages
const (
	MaxMessageLength = 140
	HomeFeedLimit    = 100
)

// Default profile images applied at signup when none are supplied
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
