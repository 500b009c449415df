package query

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Defaults and bounds for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	OrderAsc  = "asc"
	OrderDesc = "desc"

	// StatusAll is the sentinel meaning "do not filter by status".
	StatusAll = "all"
)

// ListParams carries the normalized filter/sort/pagination parameters of a
// list request. Entity-specific filters are all optional; an empty string or
// nil pointer means "no filter".
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	SortBy    string
	SortOrder string

	DateFrom   *time.Time
	DateTo     *time.Time
	Rating     int
	BrandID    string
	CategoryID string
	ProductID  string
	ServiceID  string
}

// ParseListParams reads list parameters from the request query string and
// normalizes them: non-numeric or non-positive page/limit fall back to the
// defaults, limit is capped, and sentinel filter values ("", "undefined",
// "null", whitespace, status=all) are treated as absent.
func ParseListParams(c *fiber.Ctx) ListParams {
	p := ListParams{
		Page:      parsePositiveInt(c.Query("page"), DefaultPage),
		Limit:     parsePositiveInt(c.Query("limit"), DefaultLimit),
		Search:    NormalizeFilter(c.Query("search")),
		Status:    NormalizeFilter(c.Query("status")),
		SortBy:    NormalizeFilter(c.Query("sortBy")),
		SortOrder: strings.ToLower(NormalizeFilter(c.Query("sortOrder"))),

		BrandID:    NormalizeFilter(c.Query("brandId")),
		CategoryID: NormalizeFilter(c.Query("categoryId")),
		ProductID:  NormalizeFilter(c.Query("productId")),
		ServiceID:  NormalizeFilter(c.Query("serviceId")),
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if strings.EqualFold(p.Status, StatusAll) {
		p.Status = ""
	}

	if rating, err := strconv.Atoi(NormalizeFilter(c.Query("rating"))); err == nil && rating >= 1 && rating <= 5 {
		p.Rating = rating
	}
	p.DateFrom = parseDate(NormalizeFilter(c.Query("dateFrom")), false)
	p.DateTo = parseDate(NormalizeFilter(c.Query("dateTo")), true)

	return p
}

// NormalizeFilter maps sentinel values coming off the wire to an absent
// filter. Client hooks serialize missing state as "undefined"/"null", and
// some forms submit whitespace; all of those mean "no filter".
func NormalizeFilter(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" || trimmed == "undefined" || trimmed == "null" {
		return ""
	}
	return trimmed
}

func parsePositiveInt(v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// parseDate accepts YYYY-MM-DD or RFC3339. For a range end the date-only
// form is pushed to the end of that day so the range is inclusive.
func parseDate(v string, endOfDay bool) *time.Time {
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause builds a safe ORDER BY clause from an allow-list of sortable
// columns. An unknown sortBy falls back to defaultColumn and anything other
// than "asc" sorts descending. Tie-break order beyond the chosen column is
// implementation-defined.
func (p ListParams) OrderClause(allowed map[string]string, defaultColumn string) string {
	column, ok := allowed[p.SortBy]
	if !ok {
		column = defaultColumn
	}
	direction := OrderDesc
	if p.SortOrder == OrderAsc {
		direction = OrderAsc
	}
	return column + " " + direction
}

// Pagination is the metadata block of a paginated response envelope.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes pagination metadata. By convention a zero total
// yields zero pages.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Paginate is a GORM scope applying the offset/limit of the params.
func Paginate(p ListParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Sort is a GORM scope applying allow-listed ordering.
func Sort(p ListParams, allowed map[string]string, defaultColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(p.OrderClause(allowed, defaultColumn))
	}
}

// Search is a GORM scope matching the search term case-insensitively against
// any of the given text columns. A LOWER(...) LIKE comparison keeps behavior
// identical between PostgreSQL and the SQLite test database.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clause := ""
		args := make([]interface{}, 0, len(columns))
		for i, col := range columns {
			if i > 0 {
				clause += " OR "
			}
			clause += "LOWER(" + col + ") LIKE ?"
			args = append(args, pattern)
		}
		return db.Where(clause, args...)
	}
}
