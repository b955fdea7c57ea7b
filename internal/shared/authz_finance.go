package shared

// Finance permissions cover payments, refunds, expenses, payroll and the
// dashboard.
const (
	PermPaymentMethodsRead   = "payment_methods:read"
	PermPaymentMethodsCreate = "payment_methods:create"
	PermPaymentMethodsUpdate = "payment_methods:update"
	PermPaymentMethodsDelete = "payment_methods:delete"

	PermPaymentsRead   = "payments:read"
	PermPaymentsCreate = "payments:create"
	PermPaymentsUpdate = "payments:update"
	PermPaymentsDelete = "payments:delete"

	PermRefundsRead   = "refunds:read"
	PermRefundsCreate = "refunds:create"
	PermRefundsUpdate = "refunds:update"
	PermRefundsDelete = "refunds:delete"

	PermExpensesRead   = "expenses:read"
	PermExpensesCreate = "expenses:create"
	PermExpensesUpdate = "expenses:update"
	PermExpensesDelete = "expenses:delete"

	PermPayrollRead   = "payroll:read"
	PermPayrollCreate = "payroll:create"
	PermPayrollUpdate = "payroll:update"
	PermPayrollDelete = "payroll:delete"

	PermDashboardRead = "dashboard:read"
)

// FinanceScopes lists all finance-side permissions.
func FinanceScopes() []string {
	return []string{
		PermPaymentMethodsRead,
		PermPaymentMethodsCreate,
		PermPaymentMethodsUpdate,
		PermPaymentMethodsDelete,
		PermPaymentsRead,
		PermPaymentsCreate,
		PermPaymentsUpdate,
		PermPaymentsDelete,
		PermRefundsRead,
		PermRefundsCreate,
		PermRefundsUpdate,
		PermRefundsDelete,
		PermExpensesRead,
		PermExpensesCreate,
		PermExpensesUpdate,
		PermExpensesDelete,
		PermPayrollRead,
		PermPayrollCreate,
		PermPayrollUpdate,
		PermPayrollDelete,
		PermDashboardRead,
	}
}
