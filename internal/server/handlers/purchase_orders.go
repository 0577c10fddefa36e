package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

func (h *Handler) CreatePurchaseOrder(c *gin.Context) {
	var po models.PurchaseOrder
	if err := c.ShouldBindJSON(&po); err != nil {
		badRequest(c, err)
		return
	}
	if po.SupplierID.IsZero() || len(po.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplierId and at least one item are required"})
		return
	}
	if err := h.repo.CreatePurchaseOrder(c.Request.Context(), &po); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, po)
}

func (h *Handler) GetPurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	po, err := h.repo.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}

func (h *Handler) ListPurchaseOrders(c *gin.Context) {
	supplierID, ok := idQuery(c, "supplierId")
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

	f := mongodb.PurchaseOrderFilter{
		Search:     c.Query("search"),
		SupplierID: supplierID,
		ProjectID:  projectID,
		Status:     models.PurchaseOrderStatus(c.Query("status")),
		From:       from,
		To:         to,
		Page:       pageQuery(c),
	}
	orders, total, err := h.repo.ListPurchaseOrders(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, orders, f.Page, total)
}

func (h *Handler) UpdatePurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var po models.PurchaseOrder
	if err := c.ShouldBindJSON(&po); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	po.ID = existing.ID
	po.OrderNumber = existing.OrderNumber
	po.CreatedAt = existing.CreatedAt
	// The challan attachment is managed through its own endpoint.
	po.ChallanURL = existing.ChallanURL
	po.ChallanPublicID = existing.ChallanPublicID

	if err := h.repo.UpdatePurchaseOrder(c.Request.Context(), &po); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}

func (h *Handler) DeletePurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeletePurchaseOrder(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AttachChallan uploads the delivery challan scan and stores its location on
// the order. A previous attachment is removed from the store once replaced.
func (h *Handler) AttachChallan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	po, err := h.repo.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	fileHeader, err := c.FormFile("challan")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challan file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer file.Close()

	result, err := h.uploads.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.fail(c, err)
		return
	}

	previous := po.ChallanPublicID
	po.ChallanURL = result.URL
	po.ChallanPublicID = result.PublicID

	if err := h.repo.UpdatePurchaseOrder(c.Request.Context(), po); err != nil {
		h.fail(c, err)
		return
	}

	if previous != "" && previous != result.PublicID {
		if err := h.uploads.Remove(c.Request.Context(), previous); err != nil {
			h.logger.Warn("failed to remove replaced challan", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, po)
}
