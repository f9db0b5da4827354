package errors

// Error codes returned in ErrorResponse.Error.
// Format: CATEGORY_SPECIFIC_DETAIL; the front end maps messages by code.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username or password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token already expired at login
	AuthzForbidden         = "AUTHZ_FORBIDDEN"          // backend refused the operator

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND"
	ResourceConflict = "RESOURCE_CONFLICT"

	// ==================== Workflow (ACTION_) ====================
	ActionConfirmationRequired = "ACTION_CONFIRMATION_REQUIRED" // destructive action not confirmed
	ActionInProgress           = "ACTION_IN_PROGRESS"           // same form already submitting
	ActionNotAllowed           = "ACTION_NOT_ALLOWED"           // no status transition, unsaved banner

	// ==================== Catalog (CATEGORY_, BANNER_, ORDER_) ====================
	CategoryHasProducts    = "CATEGORY_HAS_PRODUCTS"
	BannerNotPersisted     = "BANNER_NOT_PERSISTED"
	BannerProductAttached  = "BANNER_PRODUCT_ATTACHED"
	BannerEditorNotOpen    = "BANNER_EDITOR_NOT_OPEN"
	OrderTransitionInvalid = "ORDER_TRANSITION_INVALID"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API" // admin REST API failed or unreachable
)
