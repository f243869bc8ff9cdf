package service

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	model "performance_backend/internals/features/performances/model"
	"performance_backend/internals/features/performances/repository"
)

type ViewMode string

const (
	ModeToday  ViewMode = "today"
	ModeSearch ViewMode = "search"
	ModeAll    ViewMode = "all"
	ModeTrash  ViewMode = "trash"
)

// View is a resolved listing request: what to select, how to order it,
// and what the page shows.
type View struct {
	Mode        ViewMode
	Filter      repository.Filter
	Ordering    repository.Ordering
	Title       string
	DisplayDate string
}

// ResolveView turns (mode, searchDate) into a query. Precedence:
// trash, then a non-blank searchDate, then "all", then today's performances.
// Dates are matched as substrings so trailing annotations like "(Thu)" still hit.
func ResolveView(mode, searchDate, today string) View {
	mode = strings.ToLower(strings.TrimSpace(mode))
	searchDate = strings.TrimSpace(searchDate)

	switch {
	case mode == string(ModeTrash):
		return View{
			Mode:     ModeTrash,
			Filter:   repository.Filter{Lifecycle: repository.OnlyCancelled},
			Ordering: repository.Ordering{Column: model.ColDate, Desc: true},
			Title:    "Trash (cancelled performances)",
		}
	case searchDate != "":
		return View{
			Mode:        ModeSearch,
			Filter:      repository.Filter{Lifecycle: repository.OnlyActive, DateContains: searchDate},
			Ordering:    repository.Ordering{Column: model.ColID},
			Title:       fmt.Sprintf("Search results for '%s'", searchDate),
			DisplayDate: searchDate,
		}
	case mode == string(ModeAll):
		return View{
			Mode:     ModeAll,
			Filter:   repository.Filter{Lifecycle: repository.OnlyActive},
			Ordering: repository.Ordering{Column: model.ColDate},
			Title:    "All performances (by date)",
		}
	default:
		return View{
			Mode:        ModeToday,
			Filter:      repository.Filter{Lifecycle: repository.OnlyActive, DateContains: today},
			Ordering:    repository.Ordering{Column: model.ColID},
			Title:       fmt.Sprintf("Today's performances (%s)", today),
			DisplayDate: today,
		}
	}
}

var numericID = regexp.MustCompile(`^[0-9]+$`)

// SuggestNextID returns the largest numeric id plus one, or "1" when there are none.
// Non-numeric ids are skipped.
func SuggestNextID(ids []string) string {
	var best *big.Int
	for _, id := range ids {
		if !numericID.MatchString(id) {
			continue
		}
		n, ok := new(big.Int).SetString(id, 10)
		if !ok {
			continue
		}
		if best == nil || n.Cmp(best) > 0 {
			best = n
		}
	}
	if best == nil {
		return "1"
	}
	return best.Add(best, big.NewInt(1)).String()
}
