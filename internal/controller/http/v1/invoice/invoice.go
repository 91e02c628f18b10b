package invoice

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/repository/postgres/invoice"
	"guardpost/backend/internal/service/invoicepdf"
)

type Controller struct {
	invoice Invoice
}

func NewController(invoice Invoice) *Controller {
	return &Controller{invoice}
}

func (uc Controller) GetInvoiceList(c *web.Context) error {
	var filter invoice.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if clientID, ok := c.GetQueryFunc(reflect.Int, "client_id").(*int); ok {
		filter.ClientID = clientID
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.invoice.GetList(c.Ctx, filter)
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

func (uc Controller) GetInvoiceDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.invoice.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// PreviewInvoice groups the client's unbilled approved entries into lines
// without creating anything.
func (uc Controller) PreviewInvoice(c *web.Context) error {
	clientID := c.GetParam(reflect.Int, "client_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.invoice.Preview(c.Ctx, clientID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ConfirmInvoice(c *web.Context) error {
	clientID := c.GetParam(reflect.Int, "client_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request invoice.ConfirmRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ClientID = clientID

	response, err := uc.invoice.Confirm(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateInvoiceStatus(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request invoice.UpdateStatusRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.invoice.UpdateStatus(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// GetInvoicePdf streams the invoice as a PDF document.
func (uc Controller) GetInvoicePdf(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.invoice.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	doc := invoicepdf.Document{}
	if detail.Invoice.InvoiceNumber != nil {
		doc.Number = *detail.Invoice.InvoiceNumber
	}
	if detail.Invoice.ClientName != nil {
		doc.ClientName = *detail.Invoice.ClientName
	}
	if detail.Invoice.IssueDate != nil {
		doc.IssuedAt = *detail.Invoice.IssueDate
	} else {
		doc.IssuedAt = time.Now()
	}
	if detail.Invoice.DueDate != nil {
		doc.DueDate = *detail.Invoice.DueDate
	}
	if detail.Invoice.Amount != nil {
		doc.Total = *detail.Invoice.Amount
	}
	for _, item := range detail.Items {
		line := invoicepdf.Line{}
		if item.Description != nil {
			line.Description = *item.Description
		}
		if item.Quantity != nil {
			line.Quantity = *item.Quantity
		}
		if item.Rate != nil {
			line.Rate = *item.Rate
		}
		if item.Amount != nil {
			line.Amount = *item.Amount
		}
		doc.Lines = append(doc.Lines, line)
	}

	pdf, err := invoicepdf.Render(doc)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", doc.Number))
	c.Data(http.StatusOK, "application/pdf", pdf)

	return nil
}
