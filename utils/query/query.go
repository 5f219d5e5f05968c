package query

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams holds the parameters shared by every list endpoint.
type ListParams struct {
	Page           int
	Limit          int
	Search         string
	IncludeDeleted bool
}

// ParseListParams extracts page, limit, search and includeDeleted from the
// query string, clamping page to >=1 and limit to 1..100.
func ParseListParams(c *fiber.Ctx) ListParams {
	page, err := strconv.Atoi(c.Query("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return ListParams{
		Page:           page,
		Limit:          limit,
		Search:         c.Query("search", ""),
		IncludeDeleted: c.Query("includeDeleted", "") == "true",
	}
}

// Offset returns the row offset for the current page
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate applies Offset and Limit to the query
func (p ListParams) Paginate(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}

// Search applies a grouped case-insensitive match over the given columns.
// With no search term or no columns the query is returned unchanged.
func Search(db *gorm.DB, term string, columns ...string) *gorm.DB {
	if term == "" || len(columns) == 0 {
		return db
	}

	pattern := "%" + term + "%"
	cond := db.Session(&gorm.Session{NewDB: true}).
		Where(columns[0]+" ILIKE ?", pattern)
	for _, col := range columns[1:] {
		cond = cond.Or(col+" ILIKE ?", pattern)
	}

	return db.Where(cond)
}

// ExcludeDeleted filters out soft-deleted rows unless the caller opted in.
// Only meaningful for models carrying the explicit deleted flag.
func ExcludeDeleted(db *gorm.DB, includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return db
	}
	return db.Where("deleted = ?", false)
}
