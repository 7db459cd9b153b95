package errors

import "net/http"

var (
	ErrWaterPointNotFound = New(
		"WATER_POINT_NOT_FOUND",
		"Water point not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidFilter = New(
		"INVALID_FILTER",
		"Invalid filter value",
		http.StatusBadRequest,
	)

	ErrInvalidPage = New(
		"INVALID_PAGE",
		"Page must be a whole number",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Finder session not found or expired",
		http.StatusNotFound,
	)

	ErrPipelineFailed = New(
		"PIPELINE_FAILED",
		"Could not load water points. Please try again.",
		http.StatusInternalServerError,
	)

	ErrSourceUnavailable = New(
		"SOURCE_UNAVAILABLE",
		"Water point data is currently unavailable",
		http.StatusServiceUnavailable,
	)

	ErrDuplicateSubscription = New(
		"DUPLICATE_SUBSCRIPTION",
		"This email address is already subscribed",
		http.StatusConflict,
	)

	ErrRegistrationRejected = New(
		"REGISTRATION_REJECTED",
		"Water point registration could not be submitted",
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
