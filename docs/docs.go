// Package docs is the Swagger description of the HTTP API, served at
// /swagger/index.html. Regenerate with `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/archive/raw-outputs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists model outputs that could not be decoded on one UTC day, with presigned download links",
                "produces": ["application/json"],
                "tags": ["Archive"],
                "summary": "List archived raw outputs",
                "parameters": [
                    {"type": "string", "description": "Day as YYYY-MM-DD (default today)", "name": "day", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/common.SuccessEnvelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/archive.ListRawOutputsResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/api/v1/archive/raw-outputs/redecode": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Runs an archived model output through the current decoder, useful after repair rules change",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Archive"],
                "summary": "Decode an archived output again",
                "parameters": [
                    {"description": "Archive key", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/archive.RedecodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.SummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "500": {"description": "Still undecodable", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/api/v1/summarize": {
            "post": {
                "description": "Asks the language model for a summary, key points and action items, and repairs whatever JSON it returns",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Summarize a transcript",
                "parameters": [
                    {
                        "description": "Transcript",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/summary.SummarizeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.SummaryResponse"}},
                    "400": {"description": "Transcript is required", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "500": {"description": "Model output could not be decoded", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "502": {"description": "Model call failed", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/api/v1/summarize/audio": {
            "post": {
                "description": "Transcribes audio with AssemblyAI, then summarizes the transcript. Send JSON with audio_url, or multipart form data with a file.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Summarize a recording",
                "parameters": [
                    {
                        "description": "Recording URL",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/summary.AudioRequest"}
                    },
                    {
                        "type": "file",
                        "description": "Recording upload",
                        "name": "file",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.SummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "502": {"description": "Transcription failed", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "503": {"description": "Transcription not configured", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/api/v1/export/notion": {
            "post": {
                "description": "Creates a Notion page with the summary and a to-do per action item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Export"],
                "summary": "Export to Notion",
                "parameters": [
                    {
                        "description": "Notion target and content",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/export.NotionExportRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/export.NotionExportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "500": {"description": "Notion rejected the page", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/api/v1/export/trello": {
            "post": {
                "description": "Creates one card per action item on the given list",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Export"],
                "summary": "Export to Trello",
                "parameters": [
                    {
                        "description": "Trello credentials and action items",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/export.TrelloExportRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/export.TrelloExportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "500": {"description": "Trello rejected a card", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/export-to-trello": {
            "post": {
                "description": "Same as /api/v1/export/trello with TRELLO_KEY, TRELLO_TOKEN and TRELLO_LIST_ID from the server environment",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Export"],
                "summary": "Export to the server's Trello list",
                "parameters": [
                    {
                        "description": "Action items",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/export.ConfiguredTrelloExportRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/export.ConfiguredTrelloExportResponse"}},
                    "400": {"description": "Trello credentials not configured", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/api/v1/meetings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists summarized meetings, newest first",
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "List meetings",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/common.SuccessEnvelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/meeting.ListMeetingsResponse"}}}
                            ]
                        }
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        },
        "/api/v1/meetings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Get a meeting",
                "parameters": [
                    {"type": "string", "description": "Meeting ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/common.SuccessEnvelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/meeting.MeetingResponse"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Delete a meeting",
                "parameters": [
                    {"type": "string", "description": "Meeting ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "archive.ListRawOutputsResponse": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "outputs": {"type": "array", "items": {"$ref": "#/definitions/archive.RawOutput"}}
            }
        },
        "archive.RawOutput": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "archive.RedecodeRequest": {
            "type": "object",
            "required": ["key"],
            "properties": {
                "key": {"type": "string"}
            }
        },
        "common.ErrorEnvelope": {
            "type": "object",
            "properties": {
                "code": {},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "info": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "common.SuccessEnvelope": {
            "type": "object",
            "properties": {
                "code": {},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "common.PaginationResponse": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "summary.ActionItem": {
            "type": "object",
            "properties": {
                "deadline": {"type": "string"},
                "owner": {"type": "string"},
                "priority": {"type": "string"},
                "task": {"type": "string"}
            }
        },
        "summary.SummarizeRequest": {
            "type": "object",
            "properties": {
                "tags": {"type": "array", "maxItems": 20, "items": {"type": "string"}},
                "title": {"type": "string", "maxLength": 255},
                "transcript": {"type": "string"}
            }
        },
        "summary.AudioRequest": {
            "type": "object",
            "properties": {
                "audio_url": {"type": "string"},
                "tags": {"type": "array", "maxItems": 20, "items": {"type": "string"}},
                "title": {"type": "string", "maxLength": 255}
            }
        },
        "summary.SummaryResponse": {
            "type": "object",
            "properties": {
                "action_items": {"type": "array", "items": {"$ref": "#/definitions/summary.ActionItem"}},
                "key_points": {"type": "array", "items": {"type": "string"}},
                "summary": {"type": "string"}
            }
        },
        "export.NotionExportRequest": {
            "type": "object",
            "required": ["parent_page_id", "title", "token"],
            "properties": {
                "action_items": {"type": "array", "items": {"$ref": "#/definitions/summary.ActionItem"}},
                "parent_page_id": {"type": "string"},
                "summary": {"type": "string"},
                "title": {"type": "string", "maxLength": 2000},
                "token": {"type": "string"}
            }
        },
        "export.NotionExportResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "export.TrelloExportRequest": {
            "type": "object",
            "required": ["api_key", "list_id", "token"],
            "properties": {
                "action_items": {"type": "array", "items": {"$ref": "#/definitions/summary.ActionItem"}},
                "api_key": {"type": "string"},
                "list_id": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "export.Card": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "export.TrelloExportResponse": {
            "type": "object",
            "properties": {
                "cards": {"type": "array", "items": {"$ref": "#/definitions/export.Card"}},
                "cards_created": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "export.ConfiguredTrelloExportRequest": {
            "type": "object",
            "properties": {
                "action_items": {"type": "array", "items": {"$ref": "#/definitions/summary.ActionItem"}}
            }
        },
        "export.ConfiguredTrelloExportResponse": {
            "type": "object",
            "properties": {
                "created_card_ids": {"type": "array", "items": {"type": "string"}},
                "success": {"type": "boolean"}
            }
        },
        "meeting.MeetingResponse": {
            "type": "object",
            "properties": {
                "action_items": {"type": "array", "items": {"$ref": "#/definitions/summary.ActionItem"}},
                "date": {"type": "string"},
                "decode_stage": {"type": "string"},
                "id": {"type": "string"},
                "key_points": {"type": "array", "items": {"type": "string"}},
                "model_used": {"type": "string"},
                "owner": {"type": "string"},
                "summary": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"},
                "transcript_sample": {"type": "string"}
            }
        },
        "meeting.ListMeetingsResponse": {
            "type": "object",
            "properties": {
                "meetings": {"type": "array", "items": {"$ref": "#/definitions/meeting.MeetingResponse"}},
                "pagination": {"$ref": "#/definitions/common.PaginationResponse"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MeetMind API",
	Description:      "Turns meeting transcripts into summaries, key points and action items, and exports them to Notion and Trello",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
