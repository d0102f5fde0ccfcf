package errs

// Machine readable codes returned to API clients in the apiCode field.
const (
	APIInvalidCredentials     = "AUTH_INVALID_CREDENTIALS"
	APIUserNotFound           = "AUTH_USER_NOT_FOUND"
	APIAccountDisabled        = "AUTH_ACCOUNT_DISABLED"
	APIInvalidToken           = "AUTH_INVALID_TOKEN"
	APIInsufficientPermission = "AUTH_INSUFFICIENT_PERMISSIONS"
	APIPasswordRequirements   = "AUTH_PASSWORD_REQUIREMENTS"
	APIUsernameExists         = "AUTH_USERNAME_EXISTS"
	APIInvalidSubdomain       = "AUTH_INVALID_SUBDOMAIN"
	APITooManyAttempts        = "AUTH_TOO_MANY_ATTEMPTS"

	APIRestaurantNotFound         = "RESTAURANT_NOT_FOUND"
	APIRestaurantSubdomainExists  = "RESTAURANT_SUBDOMAIN_EXISTS"
	APIRestaurantInvalidSubdomain = "RESTAURANT_INVALID_SUBDOMAIN"
	APIRestaurantUserNotFound     = "RESTAURANT_USER_NOT_FOUND"
	APIRestaurantUsernameExists   = "RESTAURANT_USERNAME_EXISTS"
	APIRestaurantHasUsers         = "RESTAURANT_HAS_USERS"
	APIRestaurantDisabled         = "RESTAURANT_DISABLED"

	APIValidation    = "VALIDATION_ERROR"
	APIInternal      = "INTERNAL_SERVER_ERROR"
	APIConfiguration = "CONFIGURATION_ERROR"
	APIDatabase      = "DATABASE_ERROR"
)

// Messages shown to end users.
const (
	FriendlyInvalidCredentials = "The username or password you entered is incorrect. Please try again."
	FriendlyAccountDisabled    = "Your account has been disabled. Please contact your administrator."
	FriendlyInvalidToken       = "Your session has expired. Please sign in again."
	FriendlyForbidden          = "You do not have permission to perform this action."
	FriendlyPassword           = "Password must be alphanumeric with at least %d characters, including uppercase, lowercase, and numbers."
	FriendlyUsernameExists     = "This username is already taken. Please choose a different one."
	FriendlyInvalidSubdomain   = "This address cannot be used to access this part of the application."
	FriendlyTooManyAttempts    = "Too many failed sign in attempts. Please wait a few minutes and try again."
	FriendlyRestaurantNotFound = "The restaurant could not be found."
	FriendlySubdomainExists    = "This subdomain is already taken. Please choose a different one."
	FriendlySubdomainInvalid   = "Subdomains use 3 to 255 lowercase letters, numbers and hyphens."
	FriendlyUserNotFound       = "The user could not be found."
	FriendlyRestaurantHasUsers = "Remove the restaurant users before deleting the restaurant."
	FriendlyRestaurantDisabled = "This restaurant has been disabled. Please contact support."
	FriendlyValidation         = "Some of the information provided is not valid."
	FriendlyInternal           = "An unexpected error occurred. Please try again later."
	FriendlyConfiguration      = "Server configuration error. Please contact support."
)

var defaultAPICodes = map[ErrCode]string{
	InvalidArgument:    APIValidation,
	FailedPrecondition: APIValidation,
	Unauthenticated:    APIInvalidToken,
	PermissionDenied:   APIInsufficientPermission,
	ResourceExhausted:  APITooManyAttempts,
	Internal:           APIInternal,
	InternalOnlyLog:    APIInternal,
	Unknown:            APIInternal,
}

var defaultFriendly = map[ErrCode]string{
	InvalidArgument:    FriendlyValidation,
	FailedPrecondition: FriendlyValidation,
	Unauthenticated:    FriendlyInvalidToken,
	PermissionDenied:   FriendlyForbidden,
	ResourceExhausted:  FriendlyTooManyAttempts,
	Internal:           FriendlyInternal,
	InternalOnlyLog:    FriendlyInternal,
	Unknown:            FriendlyInternal,
}
