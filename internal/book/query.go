package book

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey names the attribute a listing is ordered by.
type SortKey string

const (
	SortNone   SortKey = ""
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
	SortYear   SortKey = "year"
)

// Query defines filters, ordering and pagination for listing books.
type Query struct {
	Author string // case-insensitive substring of author
	Search string // case-insensitive substring of title
	Sort   SortKey
	Desc   bool
	Page   int // 1-based
	Limit  int
}

// Page is one slice of a filtered listing. Total counts every record that
// passed the filters, before pagination.
type Page struct {
	Items []Book
	Total int
	Page  int
	Limit int
}

// TotalPages is the number of pages needed to show Total records.
func (p Page) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// Search runs the listing pipeline over books: author filter, title filter,
// stable sort, then pagination. The input slice is not modified.
func Search(books []Book, q Query) Page {
	out := make([]Book, 0, len(books))
	author := strings.ToLower(q.Author)
	title := strings.ToLower(q.Search)
	for _, b := range books {
		if author != "" && !strings.Contains(strings.ToLower(b.Author), author) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		out = append(out, b)
	}

	if q.Sort != SortNone {
		compare := comparator(q.Sort)
		slices.SortStableFunc(out, func(a, b Book) int {
			if q.Desc {
				return compare(b, a)
			}
			return compare(a, b)
		})
	}

	total := len(out)
	start, end := bounds(q.Page, q.Limit, total)
	return Page{
		Items: out[start:end:end],
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}
}

func comparator(key SortKey) func(a, b Book) int {
	switch key {
	case SortTitle:
		return func(a, b Book) int { return strings.Compare(a.Title, b.Title) }
	case SortAuthor:
		return func(a, b Book) int { return strings.Compare(a.Author, b.Author) }
	case SortYear:
		return func(a, b Book) int { return compareYear(a.Year, b.Year) }
	default:
		return func(a, b Book) int { return 0 }
	}
}

// compareYear orders a missing year before every present one.
func compareYear(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

func bounds(page, limit, total int) (int, int) {
	if page < 1 || limit < 1 || page-1 > total/limit {
		return total, total
	}
	start := (page - 1) * limit
	if start >= total {
		return total, total
	}
	return start, min(start+limit, total)
}
