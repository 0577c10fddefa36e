package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/service/reporting"
)

func reportQuery(c *gin.Context) (reporting.Query, bool) {
	var q reporting.Query

	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"startDate", &q.From}, {"endDate", &q.To}} {
		raw := c.Query(p.name)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": p.name + " is required"})
			return q, false
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": p.name + " must be YYYY-MM-DD"})
			return q, false
		}
		*p.dst = t
	}
	// The end date bounds the range inclusively.
	q.To = q.To.Add(24*time.Hour - time.Nanosecond)

	raw := c.DefaultQuery("types", "income,expense")
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		q.Types = append(q.Types, models.TransactionType(part))
	}
	return q, true
}

// FinancialReport returns the period summary and the matching records.
func (h *Handler) FinancialReport(c *gin.Context) {
	q, ok := reportQuery(c)
	if !ok {
		return
	}

	summary, transactions, err := h.reporting.FinancialReport(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"transactions": transactions,
	})
}

// FinancialReportPDF streams the same report as a downloadable document.
func (h *Handler) FinancialReportPDF(c *gin.Context) {
	q, ok := reportQuery(c)
	if !ok {
		return
	}

	summary, transactions, err := h.reporting.FinancialReport(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}

	fileName := fmt.Sprintf("financial-report-%s-%s.pdf",
		q.From.Format("2006-01-02"), q.To.Format("2006-01-02"))
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Status(http.StatusOK)

	if err := reporting.RenderPDF(c.Writer, q, summary, transactions); err != nil {
		// Headers are gone by now; all we can do is log.
		h.logger.Error("failed to stream report", zap.Error(err))
	}
}
