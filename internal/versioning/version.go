package versioning

import "fmt"

// Version is a "major.minor" API version tag resolved from the URL path.
type Version string

const (
	// V1 is the original flat response shape.
	V1 Version = "1.0"
	// V2 adds enriched fields and wraps list responses in an envelope.
	V2 Version = "2.0"
)

// UnsupportedVersionError is returned when a request names a version tag
// outside the supported set.
type UnsupportedVersionError struct {
	Tag string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("Unsupported API version '%s'", e.Tag)
}

// Parse resolves a raw URL path segment (the part after the "v" prefix) into
// a known Version. Both short ("1") and full ("1.0") forms are accepted.
// An empty segment means the route carried no version at all, so the
// configured fallback applies.
func Parse(segment string, fallback Version) (Version, error) {
	switch segment {
	case "":
		return fallback, nil
	case "1", "1.0":
		return V1, nil
	case "2", "2.0":
		return V2, nil
	default:
		return "", &UnsupportedVersionError{Tag: segment}
	}
}
