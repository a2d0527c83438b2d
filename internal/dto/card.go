package dto

// CreateCardRequest carries the authoring client's input for one pipeline run.
// Every field besides Template is optional.
type CreateCardRequest struct {
	Template  string `json:"template"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Date      string `json:"date"`
	Details   string `json:"details"`
}
