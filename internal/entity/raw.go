package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RawGame is the loosely typed payload returned by the view_game view function.
type RawGame struct {
	Board       json.RawMessage `json:"board"`
	PlayerX     string          `json:"player_x"`
	PlayerO     string          `json:"player_o"`
	CurrentTurn Number          `json:"current_turn"`
	Status      Number          `json:"status"`
	MoveCount   Number          `json:"move_count"`
}

// Number accepts JSON numbers and numeric strings. Move renders u64 values as strings.
// Absent and null values decode to zero.
type Number int64

func (that *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*that = 0
		return nil
	}

	text := string(data)
	if len(data) > 1 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to unmarshal number string: %w", err)
		}

		if text == "" {
			*that = 0
			return nil
		}
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}

	*that = Number(value)

	return nil
}

// ParseRawGame - decodes a view_game result. The REST API wraps it either as an object or as a JSON string.
func ParseRawGame(data json.RawMessage) (*RawGame, error) {
	payload := []byte(data)

	var wrapped string
	if err := json.Unmarshal(payload, &wrapped); err == nil {
		payload = []byte(wrapped)
	}

	var raw RawGame
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &raw, nil
}
