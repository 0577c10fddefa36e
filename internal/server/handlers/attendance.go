package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

func (h *Handler) CreateAttendance(c *gin.Context) {
	var a models.Attendance
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return
	}
	if a.LabourID.IsZero() || a.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "labourId and date are required"})
		return
	}
	if err := h.repo.CreateAttendance(c.Request.Context(), &a); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAttendance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := h.repo.GetAttendance(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAttendance(c *gin.Context) {
	labourID, ok := idQuery(c, "labourId")
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

	f := mongodb.AttendanceFilter{
		LabourID: labourID,
		From:     from,
		To:       to,
		Status:   models.AttendanceStatus(c.Query("status")),
		Page:     pageQuery(c),
	}
	records, total, err := h.repo.ListAttendance(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, records, f.Page, total)
}

func (h *Handler) UpdateAttendance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var a models.Attendance
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetAttendance(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt
	if a.LabourID.IsZero() {
		a.LabourID = existing.LabourID
	}

	if err := h.repo.UpdateAttendance(c.Request.Context(), &a); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAttendance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteAttendance(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bulkAttendanceRequest struct {
	Records []models.Attendance `json:"records" binding:"required,min=1"`
}

// BulkAttendance upserts a day's sheet in one call, keyed on labour and
// date. Existing records for the same key are replaced, not duplicated.
func (h *Handler) BulkAttendance(c *gin.Context) {
	var req bulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	for i := range req.Records {
		if req.Records[i].LabourID.IsZero() || req.Records[i].Date.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every record needs labourId and date"})
			return
		}
	}

	upserted, modified, err := h.repo.BulkUpsertAttendance(c.Request.Context(), req.Records)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upserted": upserted, "modified": modified})
}
