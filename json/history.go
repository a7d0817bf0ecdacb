package json

import (
	"encoding/json"
	"fmt"

	"github.com/wanderapp/wander"
)

// placeDTO is a place recommendation on the wire.
type placeDTO struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  *float64 `json:"rating,omitempty"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
}

func (dto placeDTO) toDomain() wander.Place {
	return wander.Place{
		ID:      dto.PlaceID,
		Name:    dto.Name,
		Address: dto.Address,
		Rating:  dto.Rating,
		Lat:     dto.Lat,
		Lng:     dto.Lng,
	}
}

// contentDTO is a message body: text for every turn, places only on
// assistant turns that carry recommendations.
type contentDTO struct {
	Message string     `json:"message"`
	Places  []placeDTO `json:"places,omitempty"`
}

// historyEntryDTO is one stored message. The backend stores user turns under
// the role literal "human".
type historyEntryDTO struct {
	Role      string     `json:"role"`
	Content   contentDTO `json:"content"`
	Timestamp string     `json:"timestamp"`
}

// DecodeHistory decodes a history response into display-ordered turns.
// Assistant entries carrying places expand into one text turn followed by
// one turn per place, preserving backend order. Entries with unknown roles
// are dropped rather than failing the whole history.
func DecodeHistory(data []byte) ([]wander.Turn, error) {
	var payload struct {
		History []historyEntryDTO `json:"history"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	var turns []wander.Turn
	for _, entry := range payload.History {
		role, ok := normalizeRole(entry.Role)
		if !ok {
			continue
		}
		turns = append(turns, wander.TextTurn{Sender: role, Text: entry.Content.Message})
		if role != wander.RoleAssistant {
			continue
		}
		for _, p := range entry.Content.Places {
			turns = append(turns, wander.PlaceTurn{Place: p.toDomain()})
		}
	}
	return turns, nil
}

// DecodeReply decodes a query response into a Reply. The payload is the
// stored assistant message; only its content is relevant. A response without
// the expected content shape fails with ErrParse so the caller can fall back
// to the generic error turn.
func DecodeReply(data []byte) (wander.Reply, error) {
	var payload struct {
		Content *contentDTO `json:"content"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return wander.Reply{}, fmt.Errorf("%w: %v", wander.ErrParse, err)
	}
	if payload.Content == nil || payload.Content.Message == "" {
		return wander.Reply{}, fmt.Errorf("reply has no message: %w", wander.ErrParse)
	}
	reply := wander.Reply{Message: payload.Content.Message}
	for i, dto := range payload.Content.Places {
		p := dto.toDomain()
		if err := wander.ValidateTurn(wander.PlaceTurn{Place: p}); err != nil {
			return wander.Reply{}, fmt.Errorf("place %d: %w", i, err)
		}
		reply.Places = append(reply.Places, p)
	}
	return reply, nil
}

func normalizeRole(role string) (wander.Role, bool) {
	switch role {
	case "human", "user":
		return wander.RoleUser, true
	case "assistant", "ai":
		return wander.RoleAssistant, true
	default:
		return "", false
	}
}
