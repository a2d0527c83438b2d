package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card is the durable artifact of one pipeline run. It is immutable once both
// storage objects exist.
type Card struct {
	ID uuid.UUID `json:"id"`

	Template  string `json:"template"`
	Recipient string `json:"recipient,omitempty"`
	Message   string `json:"message,omitempty"`
	Date      string `json:"date,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	ImageKey    string `json:"image_key"`
	MetadataKey string `json:"metadata_key"`

	ImageURL string `json:"image_url"`
	ShareURL string `json:"share_url"`
}

// Metadata is the JSON sidecar stored next to the card image.
type Metadata struct {
	CardID    string    `json:"card_id"`
	Template  string    `json:"template"`
	Recipient string    `json:"recipient,omitempty"`
	Message   string    `json:"message,omitempty"`
	Date      string    `json:"date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// ImageKey and MetadataKey are pure functions of the card id. Nothing else may
// influence object addressing.
func ImageKey(id uuid.UUID) string {
	return fmt.Sprintf("cards/%s.jpg", id)
}

func MetadataKey(id uuid.UUID) string {
	return fmt.Sprintf("metadata/%s.json", id)
}
