package constants

// ContextKeyUserID is the gin context key holding the authenticated user ID.
const ContextKeyUserID = "user_id"

// Authentication
const (
	MinPasswordLength          = 8
	MaxPasswordLength          = 128
	DefaultTokenExpiryMinutes  = 1440
	AuthorizationHeader        = "Authorization"
	BearerPrefix               = "Bearer"
)

// Todo field limits
const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 5000
	MaxTags              = 10
	MaxTagLength         = 50
)

// Due-soon lookahead window bounds (hours)
const (
	MinDueSoonHours     = 1
	MaxDueSoonHours     = 24
	DefaultDueSoonHours = 1
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxAISuggestions caps how many drafts the suggestion endpoint accepts from the model.
const MaxAISuggestions = 20
