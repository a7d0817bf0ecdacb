package json

import (
	"encoding/json"
	"fmt"

	"github.com/wanderapp/wander"
)

// sessionDTO tolerates both id spellings the backend uses: list entries
// carry "id", create responses carry "session_id".
type sessionDTO struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Name      string `json:"session_name"`
	CreatedAt string `json:"created_at"`
}

func (dto sessionDTO) toDomain() (wander.Session, error) {
	id := dto.SessionID
	if id == "" {
		id = dto.ID
	}
	if id == "" {
		return wander.Session{}, fmt.Errorf("session entry has no id: %w", wander.ErrParse)
	}
	name := dto.Name
	if name == "" {
		name = wander.DefaultSessionName
	}
	return wander.Session{
		ID:        id,
		Name:      name,
		CreatedAt: parseTime(dto.CreatedAt),
	}, nil
}

// DecodeSessions decodes a session-list response (data.sessions).
func DecodeSessions(data []byte) ([]wander.Session, error) {
	raw, err := unwrap(data)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Sessions []sessionDTO `json:"sessions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal sessions: %w", err)
	}
	sessions := make([]wander.Session, 0, len(payload.Sessions))
	for i, dto := range payload.Sessions {
		s, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// DecodeSession decodes a single-session response (create, rename).
func DecodeSession(data []byte) (wander.Session, error) {
	raw, err := unwrap(data)
	if err != nil {
		return wander.Session{}, err
	}
	var dto sessionDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return wander.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return dto.toDomain()
}
