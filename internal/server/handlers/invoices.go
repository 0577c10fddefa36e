package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

func (h *Handler) CreateInvoice(c *gin.Context) {
	var inv models.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		badRequest(c, err)
		return
	}
	if inv.CustomerID.IsZero() || len(inv.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId and at least one item are required"})
		return
	}
	if err := h.repo.CreateInvoice(c.Request.Context(), &inv); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	inv, err := h.repo.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	customerID, ok := idQuery(c, "customerId")
	if !ok {
		return
	}
	projectID, ok := idQuery(c, "projectId")
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	f := mongodb.InvoiceFilter{
		Search:     c.Query("search"),
		CustomerID: customerID,
		ProjectID:  projectID,
		Status:     models.InvoiceStatus(c.Query("status")),
		From:       from,
		To:         to,
		Page:       pageQuery(c),
	}
	invoices, total, err := h.repo.ListInvoices(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, invoices, f.Page, total)
}

func (h *Handler) UpdateInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var inv models.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	inv.ID = existing.ID
	inv.InvoiceNumber = existing.InvoiceNumber
	inv.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateInvoice(c.Request.Context(), &inv); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) DeleteInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteInvoice(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
