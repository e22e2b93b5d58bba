package models

// Operator-facing validation messages.
const (
	MsgRequiredFields    = "Please fill in all required fields"
	MsgInvalidFormat     = "Format must be online or offline"
	MsgNegativeAttendees = "Attendees cannot be negative"
	MsgInvalidAttendees  = "Attendees must be a whole number"
	MsgVenueRequired     = "Venue is required for offline events"
	MsgZoomLinkRequired  = "Zoom link is required for online events"
	MsgInvalidTime       = "Please enter a valid date and time"
)

// ValidationError is returned when a submission fails the required-field
// checks. It never reaches the record store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
