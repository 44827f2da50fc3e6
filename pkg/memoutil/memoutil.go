// Package memoutil contains pure helpers for ordering, searching and
// paginating in-memory memo lists. The guest branch of the memo service uses
// these to mirror what the database does for persistent memos.
package memoutil

import (
	"slices"
	"strings"

	"memoknot/memo-api/internal/model"
)

// DefaultPageLimit is the page size used when the caller doesn't ask for one.
const DefaultPageLimit = 9

// Page is one slice of a memo list. NextCursor is only set when the page came
// back completely full, meaning there may be more entries after it.
type Page struct {
	Items      []model.Memo `json:"memos"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// SortByDate returns a new slice ordered by UpdatedAt descending. The sort is
// stable so memos sharing a timestamp keep their relative order.
func SortByDate(memos []model.Memo) []model.Memo {
	out := slices.Clone(memos)
	slices.SortStableFunc(out, func(a, b model.Memo) int {
		switch {
		case a.UpdatedAt > b.UpdatedAt:
			return -1
		case a.UpdatedAt < b.UpdatedAt:
			return 1
		default:
			return 0
		}
	})

	return out
}

// Search returns the memos whose title or content contains query,
// case-insensitively. Callers decide what an empty query means; this function
// treats it like any other and matches everything.
func Search(memos []model.Memo, query string) []model.Memo {
	q := strings.ToLower(query)

	out := []model.Memo{}
	for _, m := range memos {
		if strings.Contains(strings.ToLower(m.Title), q) || strings.Contains(strings.ToLower(m.Content), q) {
			out = append(out, m)
		}
	}

	return out
}

// Paginate slices up to limit memos out of the list, starting right after the
// element whose ID equals cursor. An empty or unknown cursor starts at the
// beginning. NextCursor is the ID of the last returned memo when exactly
// limit items came back; a list whose tail is exactly limit long therefore
// hands out a cursor that leads to one empty page.
func Paginate(memos []model.Memo, cursor string, limit int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	start := 0
	if cursor != "" {
		// IndexFunc yields -1 for a missing cursor, so the page falls back
		// to the start of the list instead of erroring
		start = slices.IndexFunc(memos, func(m model.Memo) bool { return m.ID == cursor }) + 1
	}

	end := start + limit
	if end > len(memos) {
		end = len(memos)
	}

	items := slices.Clone(memos[start:end])

	p := Page{Items: items}
	if len(items) == limit {
		p.NextCursor = items[len(items)-1].ID
	}

	return p
}
