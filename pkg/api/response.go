package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

type ListBody[T any] struct {
	List       []T             `json:"list"`
	Pagination *PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// NewPaginationMeta derives page count and offset from total, page and limit.
func NewPaginationMeta(total uint64, page, limit int) *PaginationMeta {
	meta := &PaginationMeta{TotalCount: total, Page: page, Limit: limit}
	if limit > 0 {
		meta.TotalPages = int((total + uint64(limit) - 1) / uint64(limit))
		if page > 1 {
			meta.Offset = (page - 1) * limit
		}
	}
	return meta
}

// SuccessOne returns a single object.
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func SuccessList[T any](c echo.Context, message string, list []T, total uint64, page, limit int) error {
	if list == nil {
		list = make([]T, 0)
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body: ListBody[T]{
			List:       list,
			Pagination: NewPaginationMeta(total, page, limit),
		},
	})
}
