package handler

import (
	"go-backoffice-api/internal/middleware"
	"go-backoffice-api/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Employee   *EmployeeHandler
	Shift      *ShiftHandler
	Attendance *AttendanceHandler
	Vendor     *VendorHandler
	Expense    *ExpenseHandler
	Payroll    *PayrollHandler
	Order      *OrderHandler
	Reseller   *ResellerHandler
	USPS       *USPSHandler
	Payment    *PaymentHandler
	WS         *WSHandler
}

// RegisterRoutes mounts the API under /api and the websocket under /ws.
// Static segments are registered before /:id so they are not captured as ids.
func RegisterRoutes(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api")
	admin := middleware.RequireAdmin()

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/validate-token", h.Auth.ValidateToken)
	auth.Post("/heartbeat", requireAuth, h.Auth.Heartbeat)
	auth.Post("/change-password", requireAuth, h.Auth.ChangePassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	// Dashboard
	protected.Get("/dashboard/stats", admin, h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/activity", admin, h.Dashboard.GetDailyActivity)

	// Employee directory
	employees := protected.Group("/employees")
	employees.Get("/", admin, h.Employee.GetEmployees)
	employees.Get("/me", h.Employee.GetMe)
	employees.Get("/:id", h.Employee.GetEmployee)
	employees.Post("/", admin, h.Employee.CreateEmployee)
	employees.Put("/:id", admin, h.Employee.UpdateEmployee)
	employees.Put("/:id/sessions", admin, h.Employee.SetSessions)
	employees.Post("/:id/sessions/toggle", admin, h.Employee.ToggleSession)
	employees.Delete("/:id", admin, h.Employee.DeleteEmployee)

	// Shift registry
	shifts := protected.Group("/shifts")
	shifts.Get("/", h.Shift.GetShifts)
	shifts.Get("/unassigned-employees", h.Shift.GetUnassignedEmployees)
	shifts.Get("/stats", h.Shift.GetAllShiftStats)
	shifts.Get("/:id", h.Shift.GetShift)
	shifts.Get("/:id/stats", h.Shift.GetShiftStats)
	shifts.Post("/", admin, h.Shift.CreateShift)
	shifts.Put("/:id", admin, h.Shift.UpdateShift)
	shifts.Delete("/:id", admin, h.Shift.DeleteShift)
	shifts.Post("/:id/assign-employees", admin, h.Shift.AssignEmployees)
	shifts.Post("/:id/unassign-employees", admin, h.Shift.UnassignEmployees)

	// Attendance gate
	attendance := protected.Group("/attendance", middleware.RequireSession("attendance"))
	attendance.Get("/", h.Attendance.GetAttendance)
	attendance.Get("/today", h.Attendance.GetToday)
	attendance.Get("/shift-status", h.Attendance.GetShiftStatus)
	attendance.Get("/shift-status/:employeeId", h.Attendance.GetShiftStatus)
	attendance.Delete("/shift-status/:employeeId", admin, h.Attendance.ClearOverride)
	attendance.Post("/start-shift", admin, h.Attendance.StartShift)
	attendance.Post("/start-shift/:employeeId", admin, h.Attendance.StartShift)
	attendance.Post("/time-to-go", admin, h.Attendance.TimeToGo)
	attendance.Post("/time-to-go/:employeeId", admin, h.Attendance.TimeToGo)
	attendance.Post("/end-shift", admin, h.Attendance.TimeToGo)
	attendance.Post("/checkin", h.Attendance.CheckIn)
	attendance.Post("/checkout", h.Attendance.CheckOut)

	// Vendors
	vendors := protected.Group("/vendors", middleware.RequireSession("vendors"))
	vendors.Get("/", h.Vendor.GetVendors)
	vendors.Get("/:id", h.Vendor.GetVendor)
	vendors.Post("/", h.Vendor.CreateVendor)
	vendors.Put("/:id", h.Vendor.UpdateVendor)
	vendors.Delete("/:id", h.Vendor.DeleteVendor)

	// Expenses
	expenses := protected.Group("/expenses", middleware.RequireSession("expenses"))
	expenses.Get("/", h.Expense.GetExpenses)
	expenses.Get("/summary", h.Expense.GetSummary)
	expenses.Get("/export", h.Expense.Export)
	expenses.Get("/:id", h.Expense.GetExpense)
	expenses.Post("/", h.Expense.CreateExpense)
	expenses.Put("/:id", h.Expense.UpdateExpense)
	expenses.Delete("/:id", h.Expense.DeleteExpense)

	// Payroll
	payroll := protected.Group("/payroll", middleware.RequireSession("payroll"))
	payroll.Get("/", h.Payroll.GetPayrolls)
	payroll.Get("/export", h.Payroll.Export)
	payroll.Post("/calculate", h.Payroll.Calculate)
	payroll.Get("/:id", h.Payroll.GetPayroll)
	payroll.Post("/", admin, h.Payroll.CreatePayroll)
	payroll.Put("/:id", admin, h.Payroll.UpdatePayroll)
	payroll.Delete("/:id", admin, h.Payroll.DeletePayroll)
	payroll.Post("/:id/mark-paid", admin, h.Payroll.MarkPaid)

	// Orders
	orders := protected.Group("/orders", middleware.RequireSession("orders"))
	orders.Get("/", h.Order.GetOrders)
	orders.Get("/summary", h.Order.GetSummary)
	orders.Get("/:id", h.Order.GetOrder)
	orders.Post("/", h.Order.CreateOrder)
	orders.Put("/:id", h.Order.UpdateOrder)
	orders.Delete("/:id", h.Order.DeleteOrder)

	// Reseller hub
	resellers := protected.Group("/resellers", middleware.RequireSession("reseller"))
	resellers.Get("/dashboard", h.Reseller.Dashboard)
	resellers.Get("/clients", h.Reseller.GetClients)
	resellers.Get("/clients/:id", h.Reseller.GetClient)
	resellers.Post("/clients", h.Reseller.CreateClient)
	resellers.Put("/clients/:id", h.Reseller.UpdateClient)
	resellers.Delete("/clients/:id", h.Reseller.DeleteClient)
	resellers.Get("/labels", h.Reseller.GetLabels)
	resellers.Get("/labels/:id", h.Reseller.GetLabel)
	resellers.Post("/labels", h.Reseller.CreateLabel)
	resellers.Put("/labels/:id", h.Reseller.UpdateLabel)
	resellers.Delete("/labels/:id", h.Reseller.DeleteLabel)
	resellers.Get("/transactions", h.Reseller.GetTransactions)
	resellers.Get("/transactions/:id", h.Reseller.GetTransaction)
	resellers.Post("/transactions", h.Reseller.CreateTransaction)
	resellers.Put("/transactions/:id", h.Reseller.UpdateTransaction)
	resellers.Delete("/transactions/:id", h.Reseller.DeleteTransaction)

	// USPS labels and goals
	usps := protected.Group("/usps-labels", middleware.RequireSession("usps"))
	usps.Get("/", h.USPS.GetLabels)
	usps.Get("/summary", h.USPS.GetSummary)
	usps.Get("/export", h.USPS.Export)
	usps.Get("/:id", h.USPS.GetLabel)
	usps.Post("/", h.USPS.CreateLabel)
	usps.Put("/:id", h.USPS.UpdateLabel)
	usps.Delete("/:id", h.USPS.DeleteLabel)

	goals := protected.Group("/usps-goals", middleware.RequireSession("usps"))
	goals.Get("/", h.USPS.GetGoals)
	goals.Get("/progress", h.USPS.GetProgress)
	goals.Get("/:id", h.USPS.GetGoal)
	goals.Post("/", admin, h.USPS.CreateGoal)
	goals.Put("/:id", admin, h.USPS.UpdateGoal)
	goals.Delete("/:id", admin, h.USPS.DeleteGoal)

	// Payment transactions
	transactions := protected.Group("/transactions", middleware.RequireSession("transactions"))
	transactions.Get("/", h.Payment.GetTransactions)
	transactions.Get("/:id", h.Payment.GetTransaction)
	transactions.Post("/", h.Payment.CreateTransaction)
	transactions.Put("/:id", h.Payment.UpdateTransaction)
	transactions.Delete("/:id", h.Payment.DeleteTransaction)
	transactions.Post("/:id/approve", middleware.RequireRole(model.RoleAdmin), h.Payment.Approve)
	transactions.Post("/:id/reject", middleware.RequireRole(model.RoleAdmin), h.Payment.Reject)

	// WebSocket Route
	if h.WS != nil {
		app.Get("/ws", h.WS.Upgrade, h.WS.Serve())
	}
}
