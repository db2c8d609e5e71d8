package catalog

import "errors"

var (
	// ErrValidation is the base error for malformed catalog input.
	ErrValidation = errors.New("validation error")

	// ErrMissingTitle is returned when a service has no title
	ErrMissingTitle = errors.New("title is required")

	// ErrNegativePrice is returned when a service price is negative
	ErrNegativePrice = errors.New("price must not be negative")

	// ErrInvalidDuration is returned when a service duration is not positive
	ErrInvalidDuration = errors.New("duration_min must be positive")

	// ErrMissingName is returned when a professional has no name
	ErrMissingName = errors.New("name is required")

	// ErrMissingSpecialty is returned when a professional has no specialty
	ErrMissingSpecialty = errors.New("specialty is required")

	// ErrServiceNotFound is returned when a service id does not resolve
	ErrServiceNotFound = errors.New("service not found")

	// ErrProfessionalNotFound is returned when a professional id does not resolve
	ErrProfessionalNotFound = errors.New("professional not found")
)

// IsValidation reports whether err is one of the catalog validation errors.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrMissingTitle),
		errors.Is(err, ErrNegativePrice),
		errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrMissingName),
		errors.Is(err, ErrMissingSpecialty):
		return true
	}
	return false
}

// IsNotFound reports whether err is one of the catalog not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrProfessionalNotFound)
}
