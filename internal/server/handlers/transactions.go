package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

// CreateTransaction accepts either plain JSON or a multipart form carrying
// an optional payment-slip file. The slip is uploaded to the object store
// before the record is inserted so the stored document never references a
// file that failed to land.
func (h *Handler) CreateTransaction(c *gin.Context) {
	var t models.Transaction
	var err error

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		t, err = h.transactionFromForm(c)
		if err != nil {
			badRequest(c, err)
			return
		}

		if fileHeader, ferr := c.FormFile("slip"); ferr == nil {
			file, oerr := fileHeader.Open()
			if oerr != nil {
				h.fail(c, oerr)
				return
			}
			defer file.Close()

			result, uerr := h.uploads.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
			if uerr != nil {
				h.fail(c, uerr)
				return
			}
			t.SlipURL = result.URL
			t.SlipPublicID = result.PublicID
		}
	} else if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, err)
		return
	}

	if !models.ValidTransactionType(t.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
		return
	}
	if t.Category == "" || t.Amount <= 0 || t.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category, positive amount and date are required"})
		return
	}

	if err := h.repo.CreateTransaction(c.Request.Context(), &t); err != nil {
		// The record failed after a successful upload; drop the orphan now
		// rather than waiting for the nightly sweep.
		if t.SlipPublicID != "" {
			if derr := h.uploads.Remove(c.Request.Context(), t.SlipPublicID); derr != nil {
				h.logger.Warn("failed to remove orphaned slip", zap.Error(derr))
			}
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) transactionFromForm(c *gin.Context) (models.Transaction, error) {
	var t models.Transaction
	t.Type = models.TransactionType(c.PostForm("type"))
	t.Category = c.PostForm("category")
	t.Description = c.PostForm("description")

	if raw := c.PostForm("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return t, err
		}
		t.Amount = amount
	}
	if raw := c.PostForm("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return t, err
		}
		t.Date = date
	}
	if raw := c.PostForm("projectId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return t, err
		}
		t.ProjectID = &id
	}
	return t, nil
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	t, err := h.repo.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTransactions(c *gin.Context) {
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

	f := mongodb.TransactionFilter{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		ProjectID: projectID,
		From:      from,
		To:        to,
		Page:      pageQuery(c),
	}
	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		if !models.ValidTransactionType(t) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
			return
		}
		f.Types = []models.TransactionType{t}
	}

	transactions, total, err := h.repo.ListTransactions(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	listResponse(c, transactions, f.Page, total)
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var t models.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, err)
		return
	}
	if !models.ValidTransactionType(t.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
		return
	}

	existing, err := h.repo.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	// The slip attachment cannot be swapped through a JSON update.
	t.SlipURL = existing.SlipURL
	t.SlipPublicID = existing.SlipPublicID

	if err := h.repo.UpdateTransaction(c.Request.Context(), &t); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTransaction removes the record and its slip, if any. A failed slip
// delete is not fatal; the reconciliation job will collect it.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	existing, err := h.repo.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.repo.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	if existing.SlipPublicID != "" {
		if err := h.uploads.Remove(c.Request.Context(), existing.SlipPublicID); err != nil {
			h.logger.Warn("failed to remove slip for deleted transaction", zap.Error(err))
		}
	}
	c.Status(http.StatusNoContent)
}
