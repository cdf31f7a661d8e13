package model

// MaxEventActivities caps how many activity ids an event may reference.
const MaxEventActivities = 25

// Event is a gathering hosted by an account. Date and EndDate are epoch
// milliseconds; Location is nil for events without a physical venue.
type Event struct {
	ID          string    `json:"id" validate:"required"`
	HostID      string    `json:"host_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Date        float64   `json:"date"`
	EndDate     float64   `json:"end_date,omitempty"`
	Location    *Location `json:"location,omitempty" validate:"omitempty"`
	Type        EventType `json:"type" validate:"required"`
	Attendees   []string  `json:"attendees,omitempty"`
	Activities  []string  `json:"activities,omitempty" validate:"max=25"`
}

// Text returns the free text scanned for keywords: name plus description.
func (e Event) Text() string {
	if e.Description == "" {
		return e.Name
	}
	return e.Name + " " + e.Description
}

// HasAttendee reports whether the account id is on the attendee list.
func (e Event) HasAttendee(id string) bool {
	for _, a := range e.Attendees {
		if a == id {
			return true
		}
	}
	return false
}

// BaseLocation returns the event's own location, or fallback when the
// event has none. Scoring and nearby selection both measure from here.
func (e Event) BaseLocation(fallback Location) Location {
	if e.Location != nil {
		return *e.Location
	}
	return fallback
}
