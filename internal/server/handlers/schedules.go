package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

func (h *Handler) scheduleFilter(c *gin.Context) (mongodb.ScheduleFilter, bool) {
	projectID, ok := idQuery(c, "projectId")
	if !ok {
		return mongodb.ScheduleFilter{}, false
	}
	return mongodb.ScheduleFilter{
		ProjectID: projectID,
		Phase:     models.Phase(c.Query("phase")),
		Page:      pageQuery(c),
	}, true
}

func (h *Handler) CreateWorkSchedule(c *gin.Context) {
	var w models.WorkSchedule
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err)
		return
	}
	if w.ProjectID.IsZero() || w.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId and title are required"})
		return
	}
	if !models.ValidPhase(w.Phase) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown phase"})
		return
	}
	if err := h.repo.CreateWorkSchedule(c.Request.Context(), &w); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *Handler) GetWorkSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	w, err := h.repo.GetWorkSchedule(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *Handler) ListWorkSchedules(c *gin.Context) {
	f, ok := h.scheduleFilter(c)
	if !ok {
		return
	}
	schedules, total, err := h.repo.ListWorkSchedules(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, schedules, f.Page, total)
}

func (h *Handler) UpdateWorkSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var w models.WorkSchedule
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err)
		return
	}
	if !models.ValidPhase(w.Phase) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown phase"})
		return
	}

	existing, err := h.repo.GetWorkSchedule(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	w.ID = existing.ID
	w.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateWorkSchedule(c.Request.Context(), &w); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// DeleteWorkSchedule refuses when payment entries still reference the step.
func (h *Handler) DeleteWorkSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteWorkSchedule(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongodb.ErrReferenced) {
			c.JSON(http.StatusConflict, gin.H{"error": "payment schedules still reference this step"})
			return
		}
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreatePaymentSchedule inserts a payment step bound to an existing work
// step. A dangling workScheduleId is a 422, not a 404: the route exists,
// the payload references something that does not.
func (h *Handler) CreatePaymentSchedule(c *gin.Context) {
	var p models.PaymentSchedule
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	if p.ProjectID.IsZero() || p.WorkScheduleID.IsZero() || p.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId, workScheduleId and title are required"})
		return
	}

	if err := h.repo.CreatePaymentSchedule(c.Request.Context(), &p); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "workScheduleId does not resolve to a work schedule"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPaymentSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.repo.GetPaymentSchedule(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPaymentSchedules(c *gin.Context) {
	f, ok := h.scheduleFilter(c)
	if !ok {
		return
	}
	schedules, total, err := h.repo.ListPaymentSchedules(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, schedules, f.Page, total)
}

func (h *Handler) UpdatePaymentSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var p models.PaymentSchedule
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	if p.WorkScheduleID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workScheduleId is required"})
		return
	}

	existing, err := h.repo.GetPaymentSchedule(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdatePaymentSchedule(c.Request.Context(), &p); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "workScheduleId does not resolve to a work schedule"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePaymentSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeletePaymentSchedule(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
