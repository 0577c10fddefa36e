// Package handlers implements the HTTP endpoints of the back-office API.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
	"github.com/jhconstruction/backoffice/internal/service/auth"
	"github.com/jhconstruction/backoffice/internal/service/reporting"
	"github.com/jhconstruction/backoffice/internal/service/uploads"
)

// Store is the slice of the repository the endpoints depend on. The mongodb
// repository satisfies it; tests substitute fakes the same way the reporting
// service swaps its TransactionSource.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, f mongodb.ContactFilter) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	ListProjects(ctx context.Context, f mongodb.ProjectFilter) ([]models.Project, int64, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id primitive.ObjectID) error

	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	ListCustomers(ctx context.Context, f mongodb.ContactFilter) ([]models.Customer, int64, error)
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id primitive.ObjectID) error

	CreateSupplier(ctx context.Context, s *models.Supplier) error
	GetSupplier(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error)
	ListSuppliers(ctx context.Context, f mongodb.ContactFilter) ([]models.Supplier, int64, error)
	UpdateSupplier(ctx context.Context, s *models.Supplier) error
	DeleteSupplier(ctx context.Context, id primitive.ObjectID) error

	CreateSubcontractor(ctx context.Context, s *models.Subcontractor) error
	GetSubcontractor(ctx context.Context, id primitive.ObjectID) (*models.Subcontractor, error)
	ListSubcontractors(ctx context.Context, f mongodb.ContactFilter) ([]models.Subcontractor, int64, error)
	UpdateSubcontractor(ctx context.Context, s *models.Subcontractor) error
	DeleteSubcontractor(ctx context.Context, id primitive.ObjectID) error

	CreateLabour(ctx context.Context, l *models.Labour) error
	GetLabour(ctx context.Context, id primitive.ObjectID) (*models.Labour, error)
	ListLabours(ctx context.Context, f mongodb.LabourFilter) ([]models.Labour, int64, error)
	UpdateLabour(ctx context.Context, l *models.Labour) error
	DeleteLabour(ctx context.Context, id primitive.ObjectID) error
	CreateLabourSalary(ctx context.Context, s *models.LabourSalary) error
	GetLabourSalary(ctx context.Context, id primitive.ObjectID) (*models.LabourSalary, error)
	ListLabourSalaries(ctx context.Context, labourID primitive.ObjectID, p mongodb.Page) ([]models.LabourSalary, int64, error)
	UpdateLabourSalary(ctx context.Context, s *models.LabourSalary) error
	DeleteLabourSalary(ctx context.Context, id primitive.ObjectID) error

	CreateAttendance(ctx context.Context, a *models.Attendance) error
	GetAttendance(ctx context.Context, id primitive.ObjectID) (*models.Attendance, error)
	ListAttendance(ctx context.Context, f mongodb.AttendanceFilter) ([]models.Attendance, int64, error)
	UpdateAttendance(ctx context.Context, a *models.Attendance) error
	DeleteAttendance(ctx context.Context, id primitive.ObjectID) error
	BulkUpsertAttendance(ctx context.Context, records []models.Attendance) (int64, int64, error)

	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoice(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	ListInvoices(ctx context.Context, f mongodb.InvoiceFilter) ([]models.Invoice, int64, error)
	UpdateInvoice(ctx context.Context, inv *models.Invoice) error
	DeleteInvoice(ctx context.Context, id primitive.ObjectID) error

	CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error
	GetPurchaseOrder(ctx context.Context, id primitive.ObjectID) (*models.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, f mongodb.PurchaseOrderFilter) ([]models.PurchaseOrder, int64, error)
	UpdatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error
	DeletePurchaseOrder(ctx context.Context, id primitive.ObjectID) error

	CreateSiteMaterial(ctx context.Context, m *models.SiteMaterial) error
	GetSiteMaterial(ctx context.Context, id primitive.ObjectID) (*models.SiteMaterial, error)
	ListSiteMaterials(ctx context.Context, f mongodb.MaterialFilter) ([]models.SiteMaterial, int64, error)
	UpdateSiteMaterial(ctx context.Context, m *models.SiteMaterial) error
	DeleteSiteMaterial(ctx context.Context, id primitive.ObjectID) error

	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransaction(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	ListTransactions(ctx context.Context, f mongodb.TransactionFilter) ([]models.Transaction, int64, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id primitive.ObjectID) error

	CreateWorkSchedule(ctx context.Context, w *models.WorkSchedule) error
	GetWorkSchedule(ctx context.Context, id primitive.ObjectID) (*models.WorkSchedule, error)
	ListWorkSchedules(ctx context.Context, f mongodb.ScheduleFilter) ([]models.WorkSchedule, int64, error)
	UpdateWorkSchedule(ctx context.Context, w *models.WorkSchedule) error
	DeleteWorkSchedule(ctx context.Context, id primitive.ObjectID) error
	CreatePaymentSchedule(ctx context.Context, p *models.PaymentSchedule) error
	GetPaymentSchedule(ctx context.Context, id primitive.ObjectID) (*models.PaymentSchedule, error)
	ListPaymentSchedules(ctx context.Context, f mongodb.ScheduleFilter) ([]models.PaymentSchedule, int64, error)
	UpdatePaymentSchedule(ctx context.Context, p *models.PaymentSchedule) error
	DeletePaymentSchedule(ctx context.Context, id primitive.ObjectID) error
}

var _ Store = (*mongodb.Repository)(nil)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	repo      Store
	tokens    *auth.Service
	uploads   *uploads.Service
	reporting *reporting.Service
	logger    *zap.Logger
}

// New builds the handler set.
func New(repo Store, tokens *auth.Service, uploadsSvc *uploads.Service, reportingSvc *reporting.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:      repo,
		tokens:    tokens,
		uploads:   uploadsSvc,
		reporting: reportingSvc,
		logger:    logger,
	}
}

// listEnvelope is the standard shape of every collection response.
type listEnvelope struct {
	Data  interface{} `json:"data"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int64       `json:"total"`
}

func listResponse(c *gin.Context, data interface{}, p mongodb.Page, total int64) {
	c.JSON(http.StatusOK, listEnvelope{Data: data, Page: p.Number, Limit: p.Size, Total: total})
}

// pageQuery reads page/limit query parameters into a normalized Page.
func pageQuery(c *gin.Context) mongodb.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return mongodb.NormalizePage(page, limit)
}

// idParam parses the :id path segment; a malformed id is a client error.
func idParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// idQuery parses an optional ObjectID query parameter.
func idQuery(c *gin.Context, name string) (*primitive.ObjectID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &id, true
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// badRequest reports a binding or validation failure.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// fail maps domain errors to status codes. Unknown errors become a 500 with
// the detail suppressed in release mode.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, mongodb.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate record"})
	case errors.Is(err, mongodb.ErrReferenced):
		c.JSON(http.StatusConflict, gin.H{"error": "record is still referenced"})
	case errors.Is(err, reporting.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, uploads.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, uploads.ErrStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		msg := "internal error"
		if gin.Mode() != gin.ReleaseMode {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// Health responds to liveness probes.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
