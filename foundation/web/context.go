package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request context, the underlying gin context and any
// parameter/query parsing errors collected before the handler body runs.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs []error
	queryErrs []error
}

func NewContext(gc *gin.Context) *Context {
	return &Context{
		Context: gc,
		Ctx:     gc.Request.Context(),
	}
}

// GetParam parses a path parameter into the requested kind. Parse failures are
// collected and surfaced by ValidParam so handlers can read several params
// before checking once.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	raw := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.paramErrs = append(c.paramErrs, fmt.Errorf("param %q must be an integer", name))
			return 0
		}
		return v
	case reflect.String:
		return raw
	default:
		c.paramErrs = append(c.paramErrs, fmt.Errorf("param %q: unsupported kind %s", name, kind))
		return nil
	}
}

// ValidParam reports the first path-parameter parse failure as a 400.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) > 0 {
		return NewRequestError(c.paramErrs[0], http.StatusBadRequest)
	}
	return nil
}

// GetQueryFunc parses an optional query parameter into a typed pointer.
// Absent parameters yield a typed nil pointer so callers can assign the result
// to an optional filter field directly.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	raw, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Errorf("query %q must be an integer", name))
			return (*int)(nil)
		}
		return &v
	case reflect.Float64:
		if !ok {
			return (*float64)(nil)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Errorf("query %q must be a number", name))
			return (*float64)(nil)
		}
		return &v
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Errorf("query %q must be a boolean", name))
			return (*bool)(nil)
		}
		return &v
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &raw
	default:
		c.queryErrs = append(c.queryErrs, fmt.Errorf("query %q: unsupported kind %s", name, kind))
		return nil
	}
}

// ValidQuery reports the first query-parameter parse failure as a 400.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) > 0 {
		return NewRequestError(c.queryErrs[0], http.StatusBadRequest)
	}
	return nil
}

// BindFunc decodes the JSON body into val and verifies the named struct
// fields were actually provided (non-nil after decoding).
func (c *Context) BindFunc(val interface{}, requiredFields ...string) error {
	if err := c.ShouldBindJSON(val); err != nil {
		return NewRequestError(errors.Wrap(err, "decoding request body"), http.StatusBadRequest)
	}

	v := reflect.ValueOf(val).Elem()
	for _, name := range requiredFields {
		field := v.FieldByName(name)
		if !field.IsValid() {
			continue
		}
		if field.Kind() == reflect.Ptr && field.IsNil() {
			return NewRequestError(fmt.Errorf("field %q is required", name), http.StatusBadRequest)
		}
	}

	return nil
}

// Respond writes data as JSON with the given status code.
func (c *Context) Respond(data interface{}, statusCode int) error {
	c.JSON(statusCode, data)
	return nil
}

// RespondError writes the error to the client. Trusted *Error values carry
// their own status code; anything else is reported as a 500 without leaking
// internals.
func (c *Context) RespondError(err error) error {
	if webErr := GetError(err); webErr != nil {
		return c.Respond(map[string]interface{}{
			"error":  webErr.Err.Error(),
			"status": false,
		}, webErr.Status)
	}

	return c.Respond(map[string]interface{}{
		"error":  http.StatusText(http.StatusInternalServerError),
		"status": false,
	}, http.StatusInternalServerError)
}
