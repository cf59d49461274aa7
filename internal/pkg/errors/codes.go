package errors

import "net/http"

var (
	ErrFieldsRequired = New(
		"FIELDS_REQUIRED",
		"Address and details are required.",
		http.StatusBadRequest,
	)

	ErrEmailPasswordRequired = New(
		"EMAIL_PASSWORD_REQUIRED",
		"Email and password are required",
		http.StatusBadRequest,
	)

	ErrEmailTaken = New(
		"EMAIL_TAKEN",
		"Email already registered",
		http.StatusBadRequest,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrNoHospitalsFound = New(
		"NO_HOSPITALS_FOUND",
		"No hospitals found nearby.",
		http.StatusNotFound,
	)

	ErrProviderUnavailable = New(
		"PROVIDER_ERROR",
		"Mapping provider request failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
