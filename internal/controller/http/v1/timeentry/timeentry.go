package timeentry

import (
	"net/http"
	"reflect"

	"github.com/Azure/go-autorest/autorest/date"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/repository/postgres/timeentry"
)

type Controller struct {
	timeEntry TimeEntry
}

func NewController(timeEntry TimeEntry) *Controller {
	return &Controller{timeEntry}
}

func (uc Controller) GetTimeEntryList(c *web.Context) error {
	var filter timeentry.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if officerID, ok := c.GetQueryFunc(reflect.Int, "officer_id").(*int); ok {
		filter.OfficerID = officerID
	}
	if shiftID, ok := c.GetQueryFunc(reflect.Int, "shift_id").(*int); ok {
		filter.ShiftID = shiftID
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	if from := c.Query("date_from"); from != "" {
		parsed, err := date.ParseDate(from)
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		filter.DateFrom = &parsed
	}
	if to := c.Query("date_to"); to != "" {
		parsed, err := date.ParseDate(to)
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		filter.DateTo = &parsed
	}

	list, count, err := uc.timeEntry.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ClockIn(c *web.Context) error {
	var request timeentry.ClockInRequest
	if err := c.BindFunc(&request, "ShiftID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.timeEntry.ClockIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ClockOut(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request timeentry.ClockOutRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.EntryID = id

	response, err := uc.timeEntry.ClockOut(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// ReviewTimeEntry approves or rejects a pending entry.
func (uc Controller) ReviewTimeEntry(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request timeentry.ReviewRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.timeEntry.Review(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) DeleteTimeEntry(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.timeEntry.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
