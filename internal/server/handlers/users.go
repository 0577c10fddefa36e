package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/authz"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
	"github.com/jhconstruction/backoffice/internal/server/middleware"
	"github.com/jhconstruction/backoffice/internal/service/auth"
)

func (h *Handler) ListUsers(c *gin.Context) {
	f := mongodb.ContactFilter{Search: c.Query("search"), Page: pageQuery(c)}
	users, total, err := h.repo.ListUsers(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, users, f.Page, total)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.repo.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type userUpdateRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Phone    string     `json:"phone"`
	Role     authz.Role `json:"role" binding:"required"`
	IsActive *bool      `json:"isActive"`
	Password string     `json:"password"`
}

// UpdateUser lets a manager change another account's profile, role, active
// flag and, optionally, password.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !authz.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := h.repo.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	user.Role = req.Role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.fail(c, err)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) callerObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(middleware.CallerID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// Me returns the authenticated caller's own account.
func (h *Handler) Me(c *gin.Context) {
	id, ok := h.callerObjectID(c)
	if !ok {
		return
	}
	user, err := h.repo.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileUpdateRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateMe lets any authenticated user edit their own profile. Role and
// active flag are out of reach here.
func (h *Handler) UpdateMe(c *gin.Context) {
	id, ok := h.callerObjectID(c)
	if !ok {
		return
	}

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.repo.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	user.Name = req.Name
	user.Phone = req.Phone
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.fail(c, err)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
