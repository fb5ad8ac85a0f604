package entity

// KeyMap pairs one trigger with an ordered action list and its constraints.
type KeyMap struct {
	ID             string
	Name           string
	Enabled        bool
	Trigger        Trigger
	Actions        []Action
	Constraints    []ConstraintRef
	ConstraintMode ConstraintMode
}

// DisplayName returns the name, falling back to the id.
func (k KeyMap) DisplayName() string {
	if k.Name != "" {
		return k.Name
	}
	return k.ID
}

// ActionByID returns the action with the given id.
func (k KeyMap) ActionByID(id string) (Action, bool) {
	for _, a := range k.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
