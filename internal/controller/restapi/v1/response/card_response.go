package response

type Error struct {
	Error string `json:"error"`
}

type CreateCard struct {
	CardID    string `json:"card_id"`
	Template  string `json:"template"`
	ShareURL  string `json:"share_url"`
	ImageURL  string `json:"image_url"`
	CreatedAt string `json:"created_at"`
}

type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AspectRatio string `json:"aspect_ratio"`
}
