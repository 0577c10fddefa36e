package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

func (h *Handler) CreateLabour(c *gin.Context) {
	var l models.Labour
	if err := c.ShouldBindJSON(&l); err != nil {
		badRequest(c, err)
		return
	}
	if l.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := h.repo.CreateLabour(c.Request.Context(), &l); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *Handler) GetLabour(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	l, err := h.repo.GetLabour(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *Handler) ListLabours(c *gin.Context) {
	projectID, ok := idQuery(c, "projectId")
	if !ok {
		return
	}
	f := mongodb.LabourFilter{
		Search:     c.Query("search"),
		ProjectID:  projectID,
		SkillLevel: models.SkillLevel(c.Query("skillLevel")),
		Page:       pageQuery(c),
	}
	labours, total, err := h.repo.ListLabours(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, labours, f.Page, total)
}

func (h *Handler) UpdateLabour(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var l models.Labour
	if err := c.ShouldBindJSON(&l); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetLabour(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	l.ID = existing.ID
	l.LabourID = existing.LabourID
	l.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateLabour(c.Request.Context(), &l); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// DeleteLabour removes the labourer and every salary record tied to them.
func (h *Handler) DeleteLabour(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteLabour(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListLabourSalaries(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page := pageQuery(c)
	salaries, total, err := h.repo.ListLabourSalaries(c.Request.Context(), id, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, salaries, page, total)
}

// CreateLabourSalary records one month's pay for the labourer in the path.
// The unique (labour, month) index rejects a second record for the month.
func (h *Handler) CreateLabourSalary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var s models.LabourSalary
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return
	}
	if s.Month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return
	}
	s.LabourID = id

	// The labourer must exist before pay is recorded against them.
	if _, err := h.repo.GetLabour(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.repo.CreateLabourSalary(c.Request.Context(), &s); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) UpdateLabourSalary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var s models.LabourSalary
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetLabourSalary(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	s.ID = existing.ID
	s.LabourID = existing.LabourID
	s.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateLabourSalary(c.Request.Context(), &s); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteLabourSalary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteLabourSalary(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
