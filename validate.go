package wander

import "fmt"

// ValidateTurn checks universal constraints on a turn. Backends apply it to
// decoded history and reply payloads before handing turns to the core.
func ValidateTurn(t Turn) error {
	switch tt := t.(type) {
	case TextTurn:
		if tt.Sender != RoleUser && tt.Sender != RoleAssistant {
			return fmt.Errorf("unknown role %q: %w", tt.Sender, ErrParse)
		}
		return nil
	case PlaceTurn:
		return tt.Place.validate()
	default:
		return fmt.Errorf("unknown turn type %T: %w", t, ErrParse)
	}
}

func (p Place) validate() error {
	if p.ID == "" {
		return fmt.Errorf("place missing id: %w", ErrParse)
	}
	if p.Name == "" {
		return fmt.Errorf("place %s missing name: %w", p.ID, ErrParse)
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("place %s rating %g out of range: %w", p.ID, *p.Rating, ErrParse)
	}
	return nil
}
