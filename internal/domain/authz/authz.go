// Package authz holds the closed role enumeration and the single table of
// operation permissions consulted by the HTTP middleware. Keeping the policy
// in one place keeps it auditable and testable away from the routes.
package authz

// Role is the coarse access level attached to a user account.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleEmployee || r == RoleSupervisor || r == RoleManager
}

// Operation names a role-gated action. Reads are open to any authenticated
// user and do not appear here.
type Operation string

const (
	OpProjectWrite  Operation = "project:write"
	OpProjectDelete Operation = "project:delete"

	OpCustomerWrite  Operation = "customer:write"
	OpCustomerDelete Operation = "customer:delete"

	OpSupplierWrite  Operation = "supplier:write"
	OpSupplierDelete Operation = "supplier:delete"

	OpSubcontractorWrite  Operation = "subcontractor:write"
	OpSubcontractorDelete Operation = "subcontractor:delete"

	OpLabourWrite  Operation = "labour:write"
	OpLabourDelete Operation = "labour:delete"

	OpSalaryWrite  Operation = "salary:write"
	OpSalaryDelete Operation = "salary:delete"

	OpAttendanceWrite  Operation = "attendance:write"
	OpAttendanceDelete Operation = "attendance:delete"

	OpInvoiceWrite  Operation = "invoice:write"
	OpInvoiceDelete Operation = "invoice:delete"

	OpPurchaseOrderWrite  Operation = "purchase_order:write"
	OpPurchaseOrderDelete Operation = "purchase_order:delete"

	OpMaterialWrite  Operation = "material:write"
	OpMaterialDelete Operation = "material:delete"

	OpTransactionWrite  Operation = "transaction:write"
	OpTransactionDelete Operation = "transaction:delete"

	OpScheduleWrite  Operation = "schedule:write"
	OpScheduleDelete Operation = "schedule:delete"

	OpUserManage Operation = "user:manage"

	OpReportView Operation = "report:view"
)

var managersOnly = []Role{RoleManager}
var supervisorsUp = []Role{RoleSupervisor, RoleManager}
var allRoles = []Role{RoleEmployee, RoleSupervisor, RoleManager}

// policy is the allow-list per operation. An operation absent from the table
// is denied for every role.
var policy = map[Operation][]Role{
	OpProjectWrite:  supervisorsUp,
	OpProjectDelete: managersOnly,

	OpCustomerWrite:  supervisorsUp,
	OpCustomerDelete: managersOnly,

	OpSupplierWrite:  supervisorsUp,
	OpSupplierDelete: managersOnly,

	OpSubcontractorWrite:  supervisorsUp,
	OpSubcontractorDelete: managersOnly,

	OpLabourWrite:  supervisorsUp,
	OpLabourDelete: managersOnly,

	OpSalaryWrite:  supervisorsUp,
	OpSalaryDelete: managersOnly,

	OpAttendanceWrite:  allRoles,
	OpAttendanceDelete: supervisorsUp,

	OpInvoiceWrite:  supervisorsUp,
	OpInvoiceDelete: managersOnly,

	OpPurchaseOrderWrite:  supervisorsUp,
	OpPurchaseOrderDelete: managersOnly,

	OpMaterialWrite:  allRoles,
	OpMaterialDelete: supervisorsUp,

	OpTransactionWrite:  supervisorsUp,
	OpTransactionDelete: managersOnly,

	OpScheduleWrite:  supervisorsUp,
	OpScheduleDelete: managersOnly,

	OpUserManage: managersOnly,

	OpReportView: supervisorsUp,
}

// Allowed reports whether role may perform op.
func Allowed(op Operation, role Role) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}
