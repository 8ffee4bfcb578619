package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jeremiahbrem/biztime/internal/http/response"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
	"github.com/jeremiahbrem/biztime/internal/services"
)

type InvoiceHandler struct {
	log      *logger.Logger
	invoices services.InvoiceService
}

func NewInvoiceHandler(log *logger.Logger, invoices services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{log: log.With("handler", "InvoiceHandler"), invoices: invoices}
}

type createInvoiceRequest struct {
	CompCode string   `json:"comp_code" binding:"required"`
	Amt      *float64 `json:"amt"`
}

type updateInvoiceRequest struct {
	Amt  *float64 `json:"amt"`
	Paid *bool    `json:"paid"`
}

// ListInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Success 200 {object} map[string]interface{} "{invoices: [{id, comp_code}]}"
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"invoices": invoices})
}

// GetInvoice godoc
// @Summary Get an invoice
// @Description Returns an invoice with its company nested
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice id"
// @Success 200 {object} map[string]interface{} "{invoice: InvoiceDetail}"
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"invoice": invoice})
}

// CreateInvoice godoc
// @Summary Create an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body createInvoiceRequest true "Invoice"
// @Success 201 {object} map[string]interface{} "{invoice: Invoice}"
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	amt, err := requiredFloat("amt", req.Amt)
	if err != nil {
		h.fail(c, err)
		return
	}
	invoice, err := h.invoices.Create(c.Request.Context(), req.CompCode, amt)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"invoice": invoice})
}

// UpdateInvoice godoc
// @Summary Update an invoice
// @Description Sets the amount. Passing paid moves the invoice between paid and unpaid and maintains paid_date.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice id"
// @Param invoice body updateInvoiceRequest true "Invoice"
// @Success 200 {object} map[string]interface{} "{invoice: Invoice}"
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateInvoiceRequest
	if err := bindJSON(c, &req, "id"); err != nil {
		h.fail(c, err)
		return
	}
	amt, err := requiredFloat("amt", req.Amt)
	if err != nil {
		h.fail(c, err)
		return
	}
	invoice, err := h.invoices.Update(c.Request.Context(), id, amt, req.Paid)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"invoice": invoice})
}

// DeleteInvoice godoc
// @Summary Delete an invoice
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice id"
// @Success 200 {object} response.MessageEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondDeleted(c)
}

func (h *InvoiceHandler) fail(c *gin.Context, err error) {
	logFailure(h.log, c, err)
	response.RespondAPIError(c, err)
}
