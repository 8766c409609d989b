package export

import "github.com/johnquangdev/meetmind/internal/adapter/dto/summary"

// NotionExportRequest represents the request to export a summary to Notion
type NotionExportRequest struct {
	Token        string               `json:"token" validate:"required"`
	ParentPageID string               `json:"parent_page_id" validate:"required"`
	Title        string               `json:"title" validate:"required,max=2000"`
	Summary      string               `json:"summary"`
	ActionItems  []summary.ActionItem `json:"action_items" validate:"dive"`
}

// TrelloExportRequest represents the request to export action items to a
// caller-supplied Trello list
type TrelloExportRequest struct {
	APIKey      string               `json:"api_key" validate:"required"`
	Token       string               `json:"token" validate:"required"`
	ListID      string               `json:"list_id" validate:"required"`
	ActionItems []summary.ActionItem `json:"action_items" validate:"dive"`
}

// ConfiguredTrelloExportRequest exports to the server's own Trello list
type ConfiguredTrelloExportRequest struct {
	ActionItems []summary.ActionItem `json:"action_items" validate:"dive"`
}
