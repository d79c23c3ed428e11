package models

// TripStatus is the lifecycle state of a trip
type TripStatus string

const (
	StatusPlanning  TripStatus = "PLANNING"
	StatusBooked    TripStatus = "BOOKED"
	StatusCompleted TripStatus = "COMPLETED"
	// StatusUnknown covers values written by older clients; it is never
	// accepted on writes.
	StatusUnknown TripStatus = "UNKNOWN"
)

// ParseTripStatus maps a raw string to a recognized status, falling back
// to StatusUnknown for anything else
func ParseTripStatus(s string) TripStatus {
	switch TripStatus(s) {
	case StatusPlanning, StatusBooked, StatusCompleted:
		return TripStatus(s)
	default:
		return StatusUnknown
	}
}

// Valid reports whether the status is one of the recognized lifecycle states
func (s TripStatus) Valid() bool {
	return s == StatusPlanning || s == StatusBooked || s == StatusCompleted
}
