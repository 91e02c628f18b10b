package payrollrun

import (
	"fmt"
	"net/http"
	"reflect"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/repository/postgres/payrollrun"
	"guardpost/backend/internal/service/payrollexport"
)

type Controller struct {
	payrollRun PayrollRun
}

func NewController(payrollRun PayrollRun) *Controller {
	return &Controller{payrollRun}
}

func (uc Controller) GetPayrollRunList(c *web.Context) error {
	var filter payrollrun.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.payrollRun.GetList(c.Ctx, filter)
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

func (uc Controller) GetPayrollRunDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payrollRun.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// PreviewPayrollRun aggregates the period without writing anything, so the
// dispatcher can inspect totals and warnings before confirming.
func (uc Controller) PreviewPayrollRun(c *web.Context) error {
	var request payrollrun.PreviewRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payrollRun.Preview(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ConfirmPayrollRun(c *web.Context) error {
	var request payrollrun.PreviewRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payrollRun.Confirm(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) MarkPayrollRunPaid(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.payrollRun.MarkPaid(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// ExportPayrollRun streams the run as an xlsx workbook.
func (uc Controller) ExportPayrollRun(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.payrollRun.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	rows := make([]payrollexport.Row, 0, len(detail.Items))
	for _, item := range detail.Items {
		row := payrollexport.Row{}
		if item.EmployeeID != nil {
			row.EmployeeID = *item.EmployeeID
		}
		if item.OfficerName != nil {
			row.OfficerName = *item.OfficerName
		}
		if item.RegularHours != nil {
			row.RegularHours = *item.RegularHours
		}
		if item.OvertimeHours != nil {
			row.OvertimeHours = *item.OvertimeHours
		}
		if item.GrossPay != nil {
			row.GrossPay = *item.GrossPay
		}
		if item.DeductionsTotal != nil {
			row.DeductionsTotal = *item.DeductionsTotal
		}
		if item.NetPay != nil {
			row.NetPay = *item.NetPay
		}
		rows = append(rows, row)
	}

	var periodStart, periodEnd = detail.Run.PeriodStart, detail.Run.PeriodEnd
	if periodStart == nil || periodEnd == nil {
		return c.RespondError(web.NewRequestError(fmt.Errorf("payroll run %d has no period", id), http.StatusInternalServerError))
	}

	workbook, err := payrollexport.Excel(*periodStart, *periodEnd, rows)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payroll_run_%d.xlsx", id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)

	return nil
}
