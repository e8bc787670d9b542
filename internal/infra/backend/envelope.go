package backend

import (
	"errors"
	"net/http"

	"example.com/brewery-admin/internal/domain/page"
)

// envelope is the backend's paginated list shape.
type envelope[T any] struct {
	Content     []T  `json:"content"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	Size        int  `json:"size"`
	IsFirst     bool `json:"isFirst"`
	IsLast      bool `json:"isLast"`
}

func (e *envelope[T]) page() page.Page[T] {
	if e == nil {
		return page.Page[T]{Items: []T{}, Pagination: page.Pagination{First: true, Last: true}}
	}
	items := e.Content
	if items == nil {
		items = []T{}
	}
	return page.Page[T]{
		Items: items,
		Pagination: page.Pagination{
			CurrentPage:   e.CurrentPage,
			TotalPages:    e.TotalPages,
			TotalElements: e.TotalItems,
			Size:          e.Size,
			First:         e.IsFirst,
			Last:          e.IsLast,
		},
	}
}

func listPage[T any](resp *envelope[T], err error) (page.Page[T], error) {
	if err != nil {
		return page.Page[T]{}, err
	}
	return resp.page(), nil
}

// notFound joins a domain sentinel onto a 404 so handlers can match either.
func notFound(err, sentinel error) error {
	if IsStatus(err, http.StatusNotFound) {
		return errors.Join(sentinel, err)
	}
	return err
}

// entity unwraps a single-record response, mapping 404 to sentinel.
func entity[T any](v *T, err error, sentinel error) (*T, error) {
	if err != nil {
		return nil, notFound(err, sentinel)
	}
	return v, nil
}
