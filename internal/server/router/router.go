// Package router wires the Gin engine: middlewares, route groups and the
// per-route permission gates.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/domain/authz"
	"github.com/jhconstruction/backoffice/internal/server/handlers"
	"github.com/jhconstruction/backoffice/internal/server/middleware"
	"github.com/jhconstruction/backoffice/internal/service/auth"
)

// Options carries the router's cross-cutting pieces.
type Options struct {
	Handler        *handlers.Handler
	Tokens         *auth.Service
	AllowedOrigin  string
	LoginRateLimit gin.HandlerFunc
	Logger         *zap.Logger
}

// New builds the engine with every route registered.
func New(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(middleware.CORS(opts.AllowedOrigin))

	h := opts.Handler

	r.GET("/healthz", h.Health)

	public := r.Group("/api/auth")
	{
		login := public.Group("")
		if opts.LoginRateLimit != nil {
			login.Use(opts.LoginRateLimit)
		}
		login.POST("/login", h.Login)
		public.POST("/register", h.Register)
	}

	api := r.Group("/api")
	api.Use(middleware.Authenticate(opts.Tokens))

	// Own-profile routes need only authentication.
	api.GET("/users/me", h.Me)
	api.PUT("/users/me", h.UpdateMe)

	users := api.Group("/users", middleware.Require(authz.OpUserManage))
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	crud(api, "/projects", resource{
		list: h.ListProjects, get: h.GetProject,
		create: h.CreateProject, update: h.UpdateProject, del: h.DeleteProject,
		writeOp: authz.OpProjectWrite, deleteOp: authz.OpProjectDelete,
	})
	crud(api, "/customers", resource{
		list: h.ListCustomers, get: h.GetCustomer,
		create: h.CreateCustomer, update: h.UpdateCustomer, del: h.DeleteCustomer,
		writeOp: authz.OpCustomerWrite, deleteOp: authz.OpCustomerDelete,
	})
	crud(api, "/suppliers", resource{
		list: h.ListSuppliers, get: h.GetSupplier,
		create: h.CreateSupplier, update: h.UpdateSupplier, del: h.DeleteSupplier,
		writeOp: authz.OpSupplierWrite, deleteOp: authz.OpSupplierDelete,
	})
	crud(api, "/subcontractors", resource{
		list: h.ListSubcontractors, get: h.GetSubcontractor,
		create: h.CreateSubcontractor, update: h.UpdateSubcontractor, del: h.DeleteSubcontractor,
		writeOp: authz.OpSubcontractorWrite, deleteOp: authz.OpSubcontractorDelete,
	})
	crud(api, "/labours", resource{
		list: h.ListLabours, get: h.GetLabour,
		create: h.CreateLabour, update: h.UpdateLabour, del: h.DeleteLabour,
		writeOp: authz.OpLabourWrite, deleteOp: authz.OpLabourDelete,
	})

	api.GET("/labours/:id/salaries", h.ListLabourSalaries)
	api.POST("/labours/:id/salaries", middleware.Require(authz.OpSalaryWrite), h.CreateLabourSalary)
	api.PUT("/salaries/:id", middleware.Require(authz.OpSalaryWrite), h.UpdateLabourSalary)
	api.DELETE("/salaries/:id", middleware.Require(authz.OpSalaryDelete), h.DeleteLabourSalary)

	crud(api, "/attendance", resource{
		list: h.ListAttendance, get: h.GetAttendance,
		create: h.CreateAttendance, update: h.UpdateAttendance, del: h.DeleteAttendance,
		writeOp: authz.OpAttendanceWrite, deleteOp: authz.OpAttendanceDelete,
	})
	api.POST("/attendance/bulk", middleware.Require(authz.OpAttendanceWrite), h.BulkAttendance)

	crud(api, "/invoices", resource{
		list: h.ListInvoices, get: h.GetInvoice,
		create: h.CreateInvoice, update: h.UpdateInvoice, del: h.DeleteInvoice,
		writeOp: authz.OpInvoiceWrite, deleteOp: authz.OpInvoiceDelete,
	})

	crud(api, "/purchase-orders", resource{
		list: h.ListPurchaseOrders, get: h.GetPurchaseOrder,
		create: h.CreatePurchaseOrder, update: h.UpdatePurchaseOrder, del: h.DeletePurchaseOrder,
		writeOp: authz.OpPurchaseOrderWrite, deleteOp: authz.OpPurchaseOrderDelete,
	})
	api.POST("/purchase-orders/:id/challan", middleware.Require(authz.OpPurchaseOrderWrite), h.AttachChallan)

	crud(api, "/materials", resource{
		list: h.ListMaterials, get: h.GetMaterial,
		create: h.CreateMaterial, update: h.UpdateMaterial, del: h.DeleteMaterial,
		writeOp: authz.OpMaterialWrite, deleteOp: authz.OpMaterialDelete,
	})

	crud(api, "/transactions", resource{
		list: h.ListTransactions, get: h.GetTransaction,
		create: h.CreateTransaction, update: h.UpdateTransaction, del: h.DeleteTransaction,
		writeOp: authz.OpTransactionWrite, deleteOp: authz.OpTransactionDelete,
	})

	crud(api, "/work-schedules", resource{
		list: h.ListWorkSchedules, get: h.GetWorkSchedule,
		create: h.CreateWorkSchedule, update: h.UpdateWorkSchedule, del: h.DeleteWorkSchedule,
		writeOp: authz.OpScheduleWrite, deleteOp: authz.OpScheduleDelete,
	})
	crud(api, "/payment-schedules", resource{
		list: h.ListPaymentSchedules, get: h.GetPaymentSchedule,
		create: h.CreatePaymentSchedule, update: h.UpdatePaymentSchedule, del: h.DeletePaymentSchedule,
		writeOp: authz.OpScheduleWrite, deleteOp: authz.OpScheduleDelete,
	})

	reports := api.Group("/reports", middleware.Require(authz.OpReportView))
	{
		reports.GET("/financial", h.FinancialReport)
		reports.GET("/financial/pdf", h.FinancialReportPDF)
	}

	logger.Info("router initialized")
	return r
}

// resource bundles the five standard endpoints with their gate operations.
type resource struct {
	list, get, create, update, del gin.HandlerFunc
	writeOp, deleteOp              authz.Operation
}

// crud registers the standard verb set for one resource. Reads are open to
// any authenticated caller; writes and deletes go through the gate.
func crud(api *gin.RouterGroup, path string, res resource) {
	api.GET(path, res.list)
	api.GET(path+"/:id", res.get)
	api.POST(path, middleware.Require(res.writeOp), res.create)
	api.PUT(path+"/:id", middleware.Require(res.writeOp), res.update)
	api.DELETE(path+"/:id", middleware.Require(res.deleteOp), res.del)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
