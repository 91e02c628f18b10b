package geofence

import (
	"net/http"
	"reflect"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/repository/postgres/geofenceevent"
)

type Controller struct {
	geofenceEvent GeofenceEvent
}

func NewController(geofenceEvent GeofenceEvent) *Controller {
	return &Controller{geofenceEvent}
}

// Ping takes one GPS fix from the officer's device and reports the evaluated
// geofence state for the site.
func (uc Controller) Ping(c *web.Context) error {
	var request geofenceevent.PingRequest
	if err := c.BindFunc(&request, "SiteID", "Latitude", "Longitude"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.geofenceEvent.Ping(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) AcknowledgeEvent(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.geofenceEvent.Acknowledge(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetEventList(c *web.Context) error {
	var filter geofenceevent.Filter

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
	if siteID, ok := c.GetQueryFunc(reflect.Int, "site_id").(*int); ok {
		filter.SiteID = siteID
	}
	if acknowledged, ok := c.GetQueryFunc(reflect.Bool, "acknowledged").(*bool); ok {
		filter.Acknowledged = acknowledged
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.geofenceEvent.GetList(c.Ctx, filter)
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
