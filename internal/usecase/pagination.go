package usecase

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 3
	maxPageSize     = 100
)

// 一覧レスポンス。next/previousはページ番号。
type Page[T any] struct {
	TotalCount int64 `json:"total_count"`
	PageNumber int   `json:"page_number"`
	TotalPages int   `json:"total_pages"`
	Next       *int  `json:"next"`
	Previous   *int  `json:"previous"`
	Results    []T   `json:"results"`
}

// page/page_sizeの文字列を解釈する。空ならデフォルト。
func parsePaging(pageRaw, sizeRaw string) (int, int, error) {
	page := 1
	if v := strings.TrimSpace(pageRaw); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return 0, 0, errInvalid("invalid page")
		}
		page = p
	}

	size := defaultPageSize
	if v := strings.TrimSpace(sizeRaw); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || s < 1 {
			return 0, 0, errInvalid("invalid page_size")
		}
		size = s
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, nil
}

func newPage[T any](results []T, total int64, page, size int) (Page[T], error) {
	pages := int((total + int64(size) - 1) / int64(size))
	if pages == 0 {
		pages = 1
	}
	if page > pages {
		return Page[T]{}, NewHTTPError(http.StatusNotFound, "invalid page")
	}

	out := Page[T]{
		TotalCount: total,
		PageNumber: page,
		TotalPages: pages,
		Results:    results,
	}
	if out.Results == nil {
		out.Results = []T{}
	}
	if page < pages {
		n := page + 1
		out.Next = &n
	}
	if page > 1 {
		p := page - 1
		out.Previous = &p
	}
	return out, nil
}
