package http

import (
	"net/http"
	"strconv"
	"strings"

	domain "creator-advance-service/internal/domain/advance"

	"github.com/labstack/echo/v4"
)

// problemFromErr maps a domain error kind to a status code and a
// title/detail body. The core only distinguishes kinds; this adapter
// follows the source behavior of answering 400 for all client faults.
func problemFromErr(err error) (int, Problem) {
	var title string
	switch domain.KindOf(err) {
	case domain.KindInvalidArgument:
		title = "Invalid Parameter"
	case domain.KindBusinessRule:
		title = "Business Error"
	case domain.KindNotFound:
		title = "Not Found"
	case domain.KindInvalidState:
		title = "Invalid State"
	default:
		return http.StatusInternalServerError, Problem{
			Title:  "Internal Error",
			Detail: "an unexpected error occurred",
			Status: http.StatusInternalServerError,
		}
	}
	return http.StatusBadRequest, Problem{
		Title:  title,
		Detail: err.Error(),
		Status: http.StatusBadRequest,
	}
}

func badRequest(title, detail string) (int, Problem) {
	return http.StatusBadRequest, Problem{Title: title, Detail: detail, Status: http.StatusBadRequest}
}

// intQueryParam returns the query parameter as an int, or the default
// when absent. ok is false only for a present but unparsable value.
func intQueryParam(c echo.Context, name string, def int) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
