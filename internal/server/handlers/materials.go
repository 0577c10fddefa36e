package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

func (h *Handler) CreateMaterial(c *gin.Context) {
	var m models.SiteMaterial
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, err)
		return
	}
	if m.ProjectID.IsZero() || m.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId and name are required"})
		return
	}
	if err := h.repo.CreateSiteMaterial(c.Request.Context(), &m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetMaterial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	m, err := h.repo.GetSiteMaterial(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMaterials(c *gin.Context) {
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

	f := mongodb.MaterialFilter{
		Search:    c.Query("search"),
		ProjectID: projectID,
		From:      from,
		To:        to,
		Page:      pageQuery(c),
	}
	materials, total, err := h.repo.ListSiteMaterials(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, materials, f.Page, total)
}

func (h *Handler) UpdateMaterial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var m models.SiteMaterial
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := h.repo.GetSiteMaterial(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateSiteMaterial(c.Request.Context(), &m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteMaterial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteSiteMaterial(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
