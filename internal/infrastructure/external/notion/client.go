package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/johnquangdev/meetmind/internal/domain/entities"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external"
	"github.com/johnquangdev/meetmind/pkg/config"
	"github.com/johnquangdev/meetmind/pkg/retry"
)

// Client creates pages through the Notion REST API. Integration tokens
// are supplied per call since every user exports into their own workspace.
type Client struct {
	baseURL string
	version string
	http    *http.Client
}

// Page is the created Notion page
type Page struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// NewClient creates a Notion client
func NewClient(cfg *config.NotionConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		version: cfg.Version,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreatePage posts a page built by BuildPage
func (c *Client) CreatePage(ctx context.Context, token string, page *PageRequest) (*Page, error) {
	body, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.version)

	// oauth2 picks the base transport out of the context
	authCtx := context.WithValue(ctx, oauth2.HTTPClient, c.http)
	httpClient := oauth2.NewClient(authCtx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = c.http.Timeout

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := external.CheckResponse("notion", resp); err != nil {
		return nil, err
	}

	var created Page
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		// The page exists once Notion answered 2xx
		return nil, retry.Permanent(fmt.Errorf("failed to decode notion response: %w", err))
	}
	return &created, nil
}

// PageRequest is the body of POST /v1/pages
type PageRequest struct {
	Parent     Parent         `json:"parent"`
	Properties map[string]any `json:"properties"`
	Children   []Block        `json:"children"`
}

// Parent places the page under an existing page
type Parent struct {
	PageID string `json:"page_id"`
}

// Block is a Notion block; exactly one of the typed fields is set
type Block struct {
	Object    string    `json:"object"`
	Type      string    `json:"type"`
	Heading2  *RichText `json:"heading_2,omitempty"`
	Paragraph *RichText `json:"paragraph,omitempty"`
	ToDo      *ToDo     `json:"to_do,omitempty"`
}

// RichText is the body of text blocks
type RichText struct {
	RichText []Text `json:"rich_text"`
}

// ToDo is a checkbox block
type ToDo struct {
	RichText []Text `json:"rich_text"`
	Checked  bool   `json:"checked"`
}

// Text is one rich text run
type Text struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

// Notion rejects rich text runs longer than this
const maxTextContent = 2000

func text(content string) []Text {
	runes := []rune(content)
	var runs []Text
	for len(runes) > maxTextContent {
		var t Text
		t.Text.Content = string(runes[:maxTextContent])
		runs = append(runs, t)
		runes = runes[maxTextContent:]
	}
	var t Text
	t.Text.Content = string(runes)
	return append(runs, t)
}

func heading(content string) Block {
	return Block{Object: "block", Type: "heading_2", Heading2: &RichText{RichText: text(content)}}
}

// BuildPage lays out a summary as a "Meeting Summary" section followed by
// one unchecked to-do per action item.
func BuildPage(parentPageID, title, summary string, items []entities.ActionItem) *PageRequest {
	children := []Block{
		heading("Meeting Summary"),
		{Object: "block", Type: "paragraph", Paragraph: &RichText{RichText: text(summary)}},
		heading("Action Items"),
	}

	for _, item := range items {
		content := fmt.Sprintf("%s (Owner: %s, Deadline: %s)", item.Task, item.Owner, item.Deadline)
		children = append(children, Block{
			Object: "block",
			Type:   "to_do",
			ToDo:   &ToDo{RichText: text(content)},
		})
	}

	return &PageRequest{
		Parent: Parent{PageID: parentPageID},
		Properties: map[string]any{
			"title": map[string]any{"title": text(title)},
		},
		Children: children,
	}
}
