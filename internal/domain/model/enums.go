// Package model contains the platform entities consumed by the
// recommendation engine. The engine treats every value here as a
// read-only snapshot supplied by the caller.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActivityType is the closed set of categorical tags an activity may carry.
type ActivityType string

// Activity type values.
const (
	ActivityHobby      ActivityType = "HOBBY"
	ActivitySport      ActivityType = "SPORT"
	ActivityWork       ActivityType = "WORK"
	ActivityStudy      ActivityType = "STUDY"
	ActivityTravel     ActivityType = "TRAVEL"
	ActivitySocial     ActivityType = "SOCIAL"
	ActivityRelaxation ActivityType = "RELAXATION"
	ActivityOther      ActivityType = "OTHER"
)

// MaxActivityTypes caps how many distinct type tags an activity may carry.
const MaxActivityTypes = 5

// Valid reports whether t is one of the declared activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityHobby, ActivitySport, ActivityWork, ActivityStudy,
		ActivityTravel, ActivitySocial, ActivityRelaxation, ActivityOther:
		return true
	}
	return false
}

// ParseActivityType parses a case-insensitive activity type name.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: activity type %q", ErrUnknownEnum, s)
	}
	return t, nil
}

// UnmarshalJSON decodes and normalizes an activity type name, rejecting
// names outside the declared set.
func (t *ActivityType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("activity type: %w", err)
	}
	parsed, err := ParseActivityType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EventType classifies how an event is attended.
type EventType string

// Event type values.
const (
	EventInPerson EventType = "IN_PERSON"
	EventOnline   EventType = "ONLINE"
	EventHybrid   EventType = "HYBRID"
)

// Valid reports whether t is one of the declared event types.
func (t EventType) Valid() bool {
	switch t {
	case EventInPerson, EventOnline, EventHybrid:
		return true
	}
	return false
}

// ParseEventType parses a case-insensitive event type name.
func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: event type %q", ErrUnknownEnum, s)
	}
	return t, nil
}

// UnmarshalJSON decodes and normalizes an event type name, rejecting
// names outside the declared set.
func (t *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("event type: %w", err)
	}
	parsed, err := ParseEventType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Visibility controls whether an account may be surfaced to others.
// Declaration order is meaningful: higher values are more visible,
// and comparisons rely on that rank.
type Visibility int

// Visibility levels, least to most visible.
const (
	VisibilityPrivate Visibility = iota
	VisibilityUnlisted
	VisibilityPublic
)

var visibilityNames = map[Visibility]string{
	VisibilityPrivate:  "PRIVATE",
	VisibilityUnlisted: "UNLISTED",
	VisibilityPublic:   "PUBLIC",
}

func (v Visibility) String() string {
	if name, ok := visibilityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Visibility(%d)", int(v))
}

// ParseVisibility parses a case-insensitive visibility name.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PRIVATE":
		return VisibilityPrivate, nil
	case "UNLISTED":
		return VisibilityUnlisted, nil
	case "PUBLIC":
		return VisibilityPublic, nil
	}
	return 0, fmt.Errorf("%w: visibility %q", ErrUnknownEnum, s)
}

// MarshalJSON encodes the visibility as its name.
func (v Visibility) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a visibility name, defaulting empty to UNLISTED.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("visibility: %w", err)
	}
	if s == "" {
		*v = VisibilityUnlisted
		return nil
	}
	parsed, err := ParseVisibility(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
