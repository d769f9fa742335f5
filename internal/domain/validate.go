package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MaxListNameLen      = 100
	MaxItemTextLen      = 500
	MaxEmailLen         = 255
	MinPasswordLen      = 8
	MaxPasswordLen      = 128
	MaxSearchQueryLen   = 100
	DefaultPageLimit    = 20
	MaxPage             = 1_000_000
	MaxPageLimit        = 100
	DefaultInactiveDays = 14
)

var validate = validator.New()

func trimmedLen(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return "", Validation(field, field+" is required")
	}
	if n > max {
		return "", Validation(field, field+" must be at most "+strconv.Itoa(max)+" characters")
	}
	return s, nil
}

func NormalizeListName(name string) (string, error) { return trimmedLen("name", name, MaxListNameLen) }

func NormalizeItemText(text string) (string, error) { return trimmedLen("text", text, MaxItemTextLen) }

// NormalizeEmail 去空格 + 小写
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", Validation("email", "email is required")
	}
	if len(email) > MaxEmailLen {
		return "", Validation("email", "email must be at most "+strconv.Itoa(MaxEmailLen)+" characters")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", Validation("email", "invalid email format")
	}
	return email, nil
}

func ValidatePassword(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < MinPasswordLen {
		return Validation("password", "password must be at least "+strconv.Itoa(MinPasswordLen)+" characters")
	}
	if n > MaxPasswordLen {
		return Validation("password", "password must be at most "+strconv.Itoa(MaxPasswordLen)+" characters")
	}
	return nil
}

func NormalizeSearchQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", Validation("q", "search query is required")
	}
	if utf8.RuneCountInString(q) > MaxSearchQueryLen {
		return "", Validation("q", "search query must be at most "+strconv.Itoa(MaxSearchQueryLen)+" characters")
	}
	return q, nil
}

// NewPage 0 表示未传，走默认值
func NewPage(page, limit int) (Page, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if page < 1 {
		return Page{}, Validation("page", "page must be >= 1")
	}
	if limit < 1 || limit > MaxPageLimit {
		return Page{}, Validation("limit", "limit must be between 1 and "+strconv.Itoa(MaxPageLimit))
	}
	// 上限保证 (page-1)*limit 不溢出
	if page > MaxPage {
		return Page{}, Validation("page", "page must be at most "+strconv.Itoa(MaxPage))
	}
	return Page{Page: page, Limit: limit}, nil
}
