package export

// NotionExportResponse represents a created Notion page
type NotionExportResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// Card represents a created Trello card
type Card struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// TrelloExportResponse represents cards created on a caller's list
type TrelloExportResponse struct {
	Status       string `json:"status"`
	CardsCreated int    `json:"cards_created"`
	Cards        []Card `json:"cards"`
}

// ConfiguredTrelloExportResponse represents cards created on the server's list
type ConfiguredTrelloExportResponse struct {
	Success        bool     `json:"success"`
	CreatedCardIDs []string `json:"created_card_ids"`
}
