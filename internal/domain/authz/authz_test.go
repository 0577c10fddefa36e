package authz_test

import (
	"testing"

	"github.com/jhconstruction/backoffice/internal/domain/authz"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		op   authz.Operation
		role authz.Role
		want bool
	}{
		{"manager deletes salary", authz.OpSalaryDelete, authz.RoleManager, true},
		{"employee cannot delete salary", authz.OpSalaryDelete, authz.RoleEmployee, false},
		{"supervisor cannot delete salary", authz.OpSalaryDelete, authz.RoleSupervisor, false},
		{"supervisor writes invoices", authz.OpInvoiceWrite, authz.RoleSupervisor, true},
		{"employee cannot write invoices", authz.OpInvoiceWrite, authz.RoleEmployee, false},
		{"employee records attendance", authz.OpAttendanceWrite, authz.RoleEmployee, true},
		{"employee records materials", authz.OpMaterialWrite, authz.RoleEmployee, true},
		{"only managers manage users", authz.OpUserManage, authz.RoleSupervisor, false},
		{"manager manages users", authz.OpUserManage, authz.RoleManager, true},
		{"unknown operation denies", authz.Operation("nonsense"), authz.RoleManager, false},
		{"unknown role denies", authz.OpProjectWrite, authz.Role("root"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.Allowed(tt.op, tt.role); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.op, tt.role, got, tt.want)
			}
		})
	}
}

func TestManagerAllowedEverywhere(t *testing.T) {
	ops := []authz.Operation{
		authz.OpProjectWrite, authz.OpProjectDelete,
		authz.OpCustomerWrite, authz.OpCustomerDelete,
		authz.OpSupplierWrite, authz.OpSupplierDelete,
		authz.OpSubcontractorWrite, authz.OpSubcontractorDelete,
		authz.OpLabourWrite, authz.OpLabourDelete,
		authz.OpSalaryWrite, authz.OpSalaryDelete,
		authz.OpAttendanceWrite, authz.OpAttendanceDelete,
		authz.OpInvoiceWrite, authz.OpInvoiceDelete,
		authz.OpPurchaseOrderWrite, authz.OpPurchaseOrderDelete,
		authz.OpMaterialWrite, authz.OpMaterialDelete,
		authz.OpTransactionWrite, authz.OpTransactionDelete,
		authz.OpScheduleWrite, authz.OpScheduleDelete,
		authz.OpUserManage, authz.OpReportView,
	}
	for _, op := range ops {
		if !authz.Allowed(op, authz.RoleManager) {
			t.Errorf("manager must be allowed %q", op)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []authz.Role{authz.RoleEmployee, authz.RoleSupervisor, authz.RoleManager} {
		if !authz.ValidRole(r) {
			t.Errorf("ValidRole(%q) = false, want true", r)
		}
	}
	if authz.ValidRole("admin") {
		t.Error(`ValidRole("admin") = true, want false`)
	}
}
