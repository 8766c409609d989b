package decoder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meetmind/internal/domain/entities"
)

func TestDecode_FencedBlockWithMissingComma(t *testing.T) {
	raw := "```json\n{\"summary\": \"A\", \"key_points\": [\"B\"] \"action_items\": []}\n```"

	result, report, err := DecodeWithReport(raw)
	require.NoError(t, err)

	assert.Equal(t, "A", result.Summary)
	assert.Equal(t, []string{"B"}, result.KeyPoints)
	assert.Empty(t, result.ActionItems)
	assert.NotNil(t, result.ActionItems)
	assert.Equal(t, StageSchemaCommas, report.Stage)
}

func TestDecode_KeepsOnlyFirstOfConcatenatedObjects(t *testing.T) {
	raw := `{"summary":"X","key_points":[],"action_items":[]} {"junk":1}`

	result, err := Decode(raw)
	require.NoError(t, err)

	want := &entities.SummaryResult{Summary: "X", KeyPoints: []string{}, ActionItems: []entities.ActionItem{}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestDecode_ProseAroundObject(t *testing.T) {
	raw := "Here is the summary you asked for:\n{\"summary\": \"S\", \"key_points\": [], \"action_items\": []}\nLet me know if you need more!"

	result, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "S", result.Summary)
}

func TestDecode_NoObjectIsExtractionError(t *testing.T) {
	raw := "I'm sorry, I cannot summarize this meeting."

	_, err := Decode(raw)
	require.Error(t, err)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, raw, extractErr.Raw)
}

func TestDecode_UnrecoverableParseCarriesRawText(t *testing.T) {
	raw := "```json\n{\"summary\": \"cut off mid\n```"

	_, err := Decode(raw)
	require.Error(t, err)

	var parseErr *UnrecoverableParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, raw, parseErr.Raw)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestDecode_DedupesIdenticalTasks(t *testing.T) {
	raw := `{
  "summary": "Bug triage",
  "key_points": [],
  "action_items": [
    {"task": "Fix bug", "owner": "Victor", "deadline": "Friday", "priority": "High"},
    {"task": "Fix bug", "owner": "victor", "deadline": "friday"}
  ]
}`

	result, err := Decode(raw)
	require.NoError(t, err)

	want := []entities.ActionItem{
		{Task: "Fix bug", Owner: "Victor", Deadline: "Friday", Priority: entities.PriorityHigh},
	}
	if diff := cmp.Diff(want, result.ActionItems); diff != "" {
		t.Fatalf("unexpected action items (-want +got):\n%s", diff)
	}
}

func TestDecode_AliasShapedObject(t *testing.T) {
	raw := `{"meeting_summary": {"text": "hello"}, "points": ["p1"], "tasks": [{"task": "t1"}]}`

	result, report, err := DecodeWithReport(raw)
	require.NoError(t, err)

	assert.Equal(t, "hello", result.Summary)
	assert.Equal(t, []string{"p1"}, result.KeyPoints)
	assert.Empty(t, result.ActionItems)
	assert.Empty(t, report.Dropped)
}

func TestDecode_SortsByDeadlineUrgency(t *testing.T) {
	raw := `{"summary": "s", "key_points": [], "action_items": [
		{"task": "a", "owner": "Ann", "deadline": "Tomorrow 9am"},
		{"task": "b", "owner": "Ben", "deadline": "Friday 8am"},
		{"task": "c", "owner": "Cat", "deadline": "Tonight 9pm"},
		{"task": "d", "owner": "Dan", "deadline": "Today 8am"}
	]}`

	result, err := Decode(raw)
	require.NoError(t, err)

	got := make([]string, 0, len(result.ActionItems))
	for _, item := range result.ActionItems {
		got = append(got, item.Deadline)
	}
	assert.Equal(t, []string{"Today 8am", "Tonight 9pm", "Tomorrow 9am", "Friday 8am"}, got)
}

func TestDecode_CommentsTrailingCommasAndURLs(t *testing.T) {
	raw := `{
  // generated summary
  "summary": "See https://example.com/notes", // link to notes
  "key_points": ["Budget approved",],
  "action_items": [
    {"task": "Ship release", "owner": "Dana", "deadline": "Tomorrow 5pm", "priority": "high"},
  ]
}`

	result, report, err := DecodeWithReport(raw)
	require.NoError(t, err)

	assert.Equal(t, StageDirect, report.Stage)
	assert.Equal(t, "See https://example.com/notes", result.Summary)
	assert.Equal(t, []string{"Budget approved"}, result.KeyPoints)
	require.Len(t, result.ActionItems, 1)
	assert.Equal(t, entities.PriorityHigh, result.ActionItems[0].Priority)
}

func TestDecode_RawNewlinesInsideStrings(t *testing.T) {
	raw := "{\"summary\": \"line one\nline two\", \"key_points\": [\"tab\there\"], \"action_items\": []}"

	result, report, err := DecodeWithReport(raw)
	require.NoError(t, err)

	assert.Equal(t, StageSanitized, report.Stage)
	assert.Equal(t, "line one line two", result.Summary)
	assert.Equal(t, []string{"tab here"}, result.KeyPoints)
}

func TestDecode_ReportsDroppedItems(t *testing.T) {
	raw := `{"summary": "s", "action_items": [
		"call the vendor",
		{"owner": "Ann", "deadline": "Friday"},
		{"task": "Book venue", "owner": "Ann", "deadline": "Friday"}
	]}`

	result, report, err := DecodeWithReport(raw)
	require.NoError(t, err)

	require.Len(t, report.Dropped, 2)
	assert.Equal(t, 0, report.Dropped[0].Index)
	assert.Equal(t, 1, report.Dropped[1].Index)
	require.Len(t, result.ActionItems, 1)
	assert.Equal(t, "Book venue", result.ActionItems[0].Task)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := "```json\n" + `{
  "concise_summary": ["Planning", "session"],
  "key_points_discussed": [{"point": " Scope frozen "}, {"text": "Hiring paused"}],
  "action_items_list": [
    {"task": "Draft plan", "owner": "Ann", "deadline": "Friday 3pm", "priority": "Low"},
    {"task": "Review plan", "owner": "ann", "deadline": "friday 3pm", "priority": "High"},
    {"task": "Call vendor", "owner": "Bob", "deadline": "Today 10am"},
    {"task": "Party", "owner": "All", "deadline": "Friday"}
  ]
}` + "\n```"

	first, err := Decode(raw)
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	reparsed, err := Parse(string(encoded))
	require.NoError(t, err)

	second, dropped := Normalize(reparsed)
	assert.Empty(t, dropped)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalizer is not idempotent (-first +second):\n%s", diff)
	}

	assert.Equal(t, "Planning session", first.Summary)
	assert.Equal(t, []string{"Scope frozen", "Hiring paused"}, first.KeyPoints)
	want := []entities.ActionItem{
		{Task: "Call vendor", Owner: "Bob", Deadline: "Today 10am", Priority: entities.PriorityMedium},
		{Task: "Draft plan; Review plan", Owner: "Ann", Deadline: "Friday 3pm", Priority: entities.PriorityHigh},
	}
	if diff := cmp.Diff(want, first.ActionItems); diff != "" {
		t.Fatalf("unexpected action items (-want +got):\n%s", diff)
	}
}
