package catalog // import "github.com/Xunop/aldiaa/internal/catalog"

import (
	"sort"
	"strings"

	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/util"
)

// DefaultPageSize is how many books a fresh view shows, and how many more
// "load more" reveals.
const DefaultPageSize = 20

// Filter returns the books matching every non-empty filter, newest first.
// books is left untouched.
func Filter(books []*model.Book, filters model.SearchFilters) []*model.Book {
	matched := make([]*model.Book, 0, len(books))
	for _, b := range books {
		if Match(b, filters) {
			matched = append(matched, b)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt > matched[j].CreatedAt
	})
	return matched
}

// Match reports whether b satisfies all six field filters. An empty filter
// matches anything, including an empty field.
func Match(b *model.Book, filters model.SearchFilters) bool {
	return util.ContainsFold(b.Title, filters.Title) &&
		util.ContainsFold(b.Author, filters.Author) &&
		util.ContainsFold(b.Publisher, filters.Publisher) &&
		util.ContainsFold(b.PrintPlace, filters.PrintPlace) &&
		util.ContainsFold(b.Editor, filters.Editor) &&
		util.ContainsFold(b.Course, filters.Course)
}

// Window returns the first visible books. A non-positive visible means the
// default page size.
func Window(books []*model.Book, visible int) []*model.Book {
	if visible <= 0 {
		visible = DefaultPageSize
	}
	if visible > len(books) {
		visible = len(books)
	}
	return books[:visible]
}

// HasMore reports whether "load more" would reveal anything.
func HasMore(total, visible int) bool {
	if visible <= 0 {
		visible = DefaultPageSize
	}
	return total > visible
}

// ComputeStats counts books, sums volumes and counts distinct trimmed
// authors. Authors differing only in case count separately, and a blank
// author counts as one author of its own.
func ComputeStats(books []*model.Book) model.Stats {
	stats := model.Stats{TotalBooks: len(books)}
	authors := make(map[string]struct{})
	for _, b := range books {
		stats.TotalVolumes += b.Volumes
		authors[strings.TrimSpace(b.Author)] = struct{}{}
	}
	stats.TotalAuthors = len(authors)
	return stats
}

// FindDuplicate returns the first book of the user scope whose trimmed,
// case-folded title equals title, skipping excludeID. Empty titles never match.
func FindDuplicate(books []*model.Book, userID, title, excludeID string) *model.Book {
	key := util.NormalizeTitle(title)
	if key == "" {
		return nil
	}
	for _, b := range books {
		if b.ID == excludeID || b.UserID != userID {
			continue
		}
		if util.NormalizeTitle(b.Title) == key {
			return b
		}
	}
	return nil
}
