package domain

// GeolocationFailure - reason a device location could not be obtained
type GeolocationFailure string

const (
	GeolocationPermissionDenied    GeolocationFailure = "permission_denied"
	GeolocationPositionUnavailable GeolocationFailure = "position_unavailable"
	GeolocationTimeout             GeolocationFailure = "timeout"
	GeolocationUnsupported         GeolocationFailure = "unsupported"
)

// Guidance is the user-facing hint shown while the finder runs without a location.
func (f GeolocationFailure) Guidance() string {
	switch f {
	case GeolocationPermissionDenied:
		return "Location access was denied. Allow location access for this site in your browser settings, or pick your location on the map."
	case GeolocationPositionUnavailable:
		return "Your location could not be determined. Check that location services are switched on, or pick your location on the map."
	case GeolocationTimeout:
		return "Finding your location took too long. Try again, or pick your location on the map."
	case GeolocationUnsupported:
		return "Your browser does not support location detection. Pick your location on the map instead."
	}
	return ""
}

// Known reports whether the failure is one of the declared reasons.
func (f GeolocationFailure) Known() bool {
	return f.Guidance() != ""
}
