package model

// Activity is something a user does: a hobby, sport, job, and so on.
// Identity is by ID; Description may be empty.
type Activity struct {
	ID          string         `json:"id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description,omitempty"`
	Types       []ActivityType `json:"types" validate:"max=5,dive,required"`
}

// Text returns the free text scanned for keywords: name plus description.
func (a Activity) Text() string {
	if a.Description == "" {
		return a.Name
	}
	return a.Name + " " + a.Description
}

// TypeSet returns the activity's type tags as a set.
func (a Activity) TypeSet() map[ActivityType]struct{} {
	set := make(map[ActivityType]struct{}, len(a.Types))
	for _, t := range a.Types {
		set[t] = struct{}{}
	}
	return set
}
