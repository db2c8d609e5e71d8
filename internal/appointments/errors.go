package appointments

import "errors"

var (
	// ErrSlotTaken is returned when a non-cancelled appointment already
	// occupies the requested (date, professional, time) slot.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound is returned when an appointment id does not resolve.
	ErrNotFound = errors.New("appointment not found")

	// ErrMissingClientName is returned when the client name is empty
	ErrMissingClientName = errors.New("client_name is required")

	// ErrMissingClientPhone is returned when the client phone is empty
	ErrMissingClientPhone = errors.New("client_phone is required")

	// ErrMissingService is returned when the service reference is empty
	ErrMissingService = errors.New("service_id is required")

	// ErrMissingProfessional is returned when the professional reference is empty
	ErrMissingProfessional = errors.New("professional_id is required")

	// ErrBadDate is returned when the date is not YYYY-MM-DD
	ErrBadDate = errors.New("date must be YYYY-MM-DD")

	// ErrBadTime is returned when the time is not HH:MM
	ErrBadTime = errors.New("time must be HH:MM")

	// ErrBadStatus is returned for an unknown status value
	ErrBadStatus = errors.New("unknown status")
)

// IsValidation reports whether err is a malformed-input error.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrMissingClientName),
		errors.Is(err, ErrMissingClientPhone),
		errors.Is(err, ErrMissingService),
		errors.Is(err, ErrMissingProfessional),
		errors.Is(err, ErrBadDate),
		errors.Is(err, ErrBadTime),
		errors.Is(err, ErrBadStatus):
		return true
	}
	return false
}
