package decoder

import (
	"strings"

	"github.com/johnquangdev/meetmind/internal/domain/entities"
)

// Alias tables, highest priority first.
var (
	summaryKeys    = []string{"summary", "concise_summary", "meeting_summary"}
	keyPointKeys   = []string{"key_points", "key_points_discussed", "key_points_list", "points"}
	actionItemKeys = []string{"action_items", "action_items_list", "tasks", "action_points"}

	keyPointTextKeys = []string{"description", "point", "text"}

	taskKeys     = []string{"task", "title", "description", "action"}
	ownerKeys    = []string{"owner", "assignee", "assigned_to"}
	deadlineKeys = []string{"deadline", "due", "due_date", "due_date_mentioned"}
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Normalize maps a parsed object onto the canonical schema. It never fails
// as a whole; action items that cannot be recovered are dropped and
// reported as SchemaErrors.
func Normalize(obj Value) (*entities.SummaryResult, []*SchemaError) {
	result := entities.NewSummaryResult()

	result.Summary = normalizeSummary(obj.First(summaryKeys...))
	result.KeyPoints = append(result.KeyPoints, normalizeKeyPoints(obj.First(keyPointKeys...))...)

	items, dropped := normalizeActionItems(obj.First(actionItemKeys...))
	items = filterActionable(items)
	items = dedupeByTask(items)
	items = mergeByOwnerDeadline(items)
	sortByDeadline(items)
	result.ActionItems = append(result.ActionItems, items...)

	return result, dropped
}

func normalizeSummary(v Value) string {
	s := strings.TrimSpace(summaryText(v))
	return strings.TrimSpace(lineBreaks.Replace(s))
}

func summaryText(v Value) string {
	switch v.Kind {
	case KindObject:
		if inner := v.First("text", "summary"); inner.Truthy() {
			return summaryText(inner)
		}
		parts := make([]string, 0, len(v.Object))
		for _, m := range v.Object {
			parts = append(parts, summaryText(m.Value))
		}
		return strings.Join(parts, " ")
	case KindArray:
		parts := make([]string, 0, len(v.Array))
		for _, item := range v.Array {
			parts = append(parts, summaryText(item))
		}
		return strings.Join(parts, " ")
	default:
		return v.Text()
	}
}

func normalizeKeyPoints(v Value) []string {
	items := v.Items()
	points := make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind == KindObject {
			if text := item.First(keyPointTextKeys...); text.Truthy() {
				points = append(points, strings.TrimSpace(text.Text()))
				continue
			}
		}
		points = append(points, strings.TrimSpace(item.Text()))
	}
	return points
}

func normalizeActionItems(v Value) ([]entities.ActionItem, []*SchemaError) {
	elems := v.Items()
	items := make([]entities.ActionItem, 0, len(elems))
	var dropped []*SchemaError
	for i, elem := range elems {
		item, err := buildActionItem(i, elem)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		items = append(items, item)
	}
	return items, dropped
}

func buildActionItem(index int, v Value) (entities.ActionItem, *SchemaError) {
	if v.Kind != KindObject {
		return entities.ActionItem{}, &SchemaError{Index: index, Reason: "expected an object, got " + v.Kind.String()}
	}

	task := strings.TrimSpace(v.First(taskKeys...).Text())
	if task == "" {
		return entities.ActionItem{}, &SchemaError{Index: index, Reason: "no task description"}
	}

	return entities.ActionItem{
		Task:     task,
		Owner:    textOr(v.First(ownerKeys...), entities.DefaultOwner),
		Deadline: textOr(v.First(deadlineKeys...), entities.DefaultDeadline),
		Priority: entities.ParsePriority(v.First("priority").Text()),
	}, nil
}

func textOr(v Value, fallback string) string {
	if s := strings.TrimSpace(v.Text()); s != "" {
		return s
	}
	return fallback
}
