package json

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wanderapp/wander"
)

// identityDTO is the account payload returned by login and guest entry.
type identityDTO struct {
	UserID    json.Number `json:"user_id"`
	Token     string      `json:"token"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// DecodeIdentity decodes a login or guest-entry response. Guest accounts are
// recognized by the backend's synthetic guest email domain.
func DecodeIdentity(data []byte) (wander.Identity, error) {
	raw, err := unwrap(data)
	if err != nil {
		return wander.Identity{}, err
	}
	var dto identityDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return wander.Identity{}, fmt.Errorf("unmarshal identity: %w", err)
	}
	if dto.Token == "" {
		return wander.Identity{}, fmt.Errorf("identity has no token: %w", wander.ErrParse)
	}
	return wander.Identity{
		ID:        dto.UserID.String(),
		Token:     dto.Token,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Guest:     strings.HasSuffix(dto.Email, "@guest.temporary"),
	}, nil
}
