package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldError is one entry of a 422 "detail" list.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func unprocessable(c *gin.Context, details ...fieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
}

// bindErrors turns a ShouldBindJSON error into detail entries.
func bindErrors(err error) []fieldError {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &verrs):
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			loc := []string{"body", strings.ToLower(fe.Field())}
			if fe.Tag() == "required" {
				out = append(out, fieldError{Loc: loc, Msg: "Field required", Type: "missing"})
				continue
			}
			out = append(out, fieldError{Loc: loc, Msg: fe.Error(), Type: fe.Tag()})
		}
		return out
	case errors.Is(err, io.EOF):
		return []fieldError{{Loc: []string{"body"}, Msg: "Field required", Type: "missing"}}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return []fieldError{{
				Loc:  []string{"body"},
				Msg:  "Input should be a valid dictionary or object to extract fields from",
				Type: "model_attributes_type",
			}}
		}
		kind := typeErr.Type.Kind().String()
		return []fieldError{{
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("Input should be a valid %s", kind),
			Type: kind + "_type",
		}}
	case errors.As(err, &syntaxErr):
		return []fieldError{{
			Loc:  []string{"body", strconv.FormatInt(syntaxErr.Offset, 10)},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return []fieldError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}}
	default:
		return []fieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}
}

// itemID parses the :id path parameter.
func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		unprocessable(c, fieldError{
			Loc:  []string{"path", "item_id"},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		})
		return 0, false
	}
	return id, true
}

// queryInt reads a non-negative integer query parameter, falling back to def
// when it is absent.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		unprocessable(c, fieldError{
			Loc:  []string{"query", name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		})
		return 0, false
	}
	if n < 0 {
		unprocessable(c, fieldError{
			Loc:  []string{"query", name},
			Msg:  "Input should be greater than or equal to 0",
			Type: "greater_than_equal",
		})
		return 0, false
	}
	return n, true
}
