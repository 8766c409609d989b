package decoder

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/johnquangdev/meetmind/internal/domain/entities"
)

// Owners and deadlines that make an item impossible to track on its own.
var (
	nonActionableOwners = map[string]struct{}{
		"unassigned": {}, "": {}, "n/a": {}, "none": {}, "all": {}, "all team members": {},
	}
	nonActionableDeadlines = map[string]struct{}{
		"not mentioned": {}, "": {}, "n/a": {}, "none": {}, "tbd": {}, "to be determined": {},
	}
)

var (
	timeOfDayPattern = regexp.MustCompile(`(\d{1,2})\s*(am|pm)`)
	weekdays         = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func filterActionable(items []entities.ActionItem) []entities.ActionItem {
	kept := make([]entities.ActionItem, 0, len(items))
	for _, item := range items {
		if _, bad := nonActionableOwners[fold(item.Owner)]; bad {
			continue
		}
		if _, bad := nonActionableDeadlines[fold(item.Deadline)]; bad {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func dedupeByTask(items []entities.ActionItem) []entities.ActionItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]entities.ActionItem, 0, len(items))
	for _, item := range items {
		key := fold(item.Task)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// mergeByOwnerDeadline collapses items sharing owner and deadline into the
// first one of the group, joining tasks with "; " and keeping the most
// urgent priority. Group order follows first appearance.
func mergeByOwnerDeadline(items []entities.ActionItem) []entities.ActionItem {
	type groupKey struct{ owner, deadline string }

	index := make(map[groupKey]int, len(items))
	merged := make([]entities.ActionItem, 0, len(items))
	for _, item := range items {
		key := groupKey{owner: fold(item.Owner), deadline: fold(item.Deadline)}
		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, item)
			continue
		}
		existing := &merged[i]
		existing.Task = existing.Task + "; " + item.Task
		if item.Priority.Rank() < existing.Priority.Rank() {
			existing.Priority = item.Priority
		}
	}
	return merged
}

// sortByDeadline orders items by urgency bucket then hour of day. The sort
// is stable so ties keep their merged order.
func sortByDeadline(items []entities.ActionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		bi, hi := deadlineScore(items[i].Deadline)
		bj, hj := deadlineScore(items[j].Deadline)
		if bi != bj {
			return bi < bj
		}
		return hi < hj
	})
}

// deadlineScore is a coarse urgency heuristic, not a calendar: bucket 0 for
// today/tonight, 1 for tomorrow, 2 for any weekday name, 3 otherwise. The
// hour is taken from an "<h> am|pm" mention and defaults to noon.
func deadlineScore(deadline string) (bucket, hour int) {
	dl := strings.ToLower(deadline)

	hour = 12
	if m := timeOfDayPattern.FindStringSubmatch(dl); m != nil {
		h, _ := strconv.Atoi(m[1])
		hour = h % 12
		if m[2] == "pm" {
			hour += 12
		}
	}

	switch {
	case strings.Contains(dl, "tonight") || strings.Contains(dl, "today"):
		return 0, hour
	case strings.Contains(dl, "tomorrow"):
		return 1, hour
	case containsAny(dl, weekdays):
		return 2, hour
	default:
		return 3, hour
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
