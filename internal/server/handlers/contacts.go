package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

// Customers, suppliers and subcontractors share the same CRUD shape, so
// their endpoints live together.

func contactFilter(c *gin.Context) mongodb.ContactFilter {
	return mongodb.ContactFilter{Search: c.Query("search"), Page: pageQuery(c)}
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var cust models.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		badRequest(c, err)
		return
	}
	if cust.Name == "" || cust.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}
	if err := h.repo.CreateCustomer(c.Request.Context(), &cust); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cust, err := h.repo.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	f := contactFilter(c)
	customers, total, err := h.repo.ListCustomers(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, customers, f.Page, total)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var cust models.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	cust.ID = existing.ID
	cust.CustomerID = existing.CustomerID
	cust.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateCustomer(c.Request.Context(), &cust); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateSupplier(c *gin.Context) {
	var s models.Supplier
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return
	}
	if s.Name == "" || s.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}
	if err := h.repo.CreateSupplier(c.Request.Context(), &s); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) GetSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s, err := h.repo.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) ListSuppliers(c *gin.Context) {
	f := contactFilter(c)
	suppliers, total, err := h.repo.ListSuppliers(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, suppliers, f.Page, total)
}

func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var s models.Supplier
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	s.ID = existing.ID
	s.SupplierID = existing.SupplierID
	s.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateSupplier(c.Request.Context(), &s); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteSupplier(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateSubcontractor(c *gin.Context) {
	var s models.Subcontractor
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return
	}
	if s.Name == "" || s.Trade == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and trade are required"})
		return
	}
	if err := h.repo.CreateSubcontractor(c.Request.Context(), &s); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) GetSubcontractor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s, err := h.repo.GetSubcontractor(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) ListSubcontractors(c *gin.Context) {
	f := contactFilter(c)
	subs, total, err := h.repo.ListSubcontractors(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, subs, f.Page, total)
}

func (h *Handler) UpdateSubcontractor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var s models.Subcontractor
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetSubcontractor(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	s.ID = existing.ID
	s.SubcontractorID = existing.SubcontractorID
	s.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateSubcontractor(c.Request.Context(), &s); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSubcontractor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteSubcontractor(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
