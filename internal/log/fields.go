package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldEntityID   = "entity_id"
	FieldPage       = "page"
	FieldPeriod     = "period"
	FieldUnread     = "unread_count"
)

// Components defines standard component names.
const (
	ComponentApp           = "app"
	ComponentAPI           = "api"
	ComponentSession       = "session"
	ComponentGuard         = "guard"
	ComponentState         = "state"
	ComponentAccounts      = "accounts"
	ComponentTransactions  = "transactions"
	ComponentBudgets       = "budgets"
	ComponentGoals         = "goals"
	ComponentCategories    = "categories"
	ComponentNotifications = "notifications"
	ComponentReports       = "reports"
	ComponentPoller        = "poller"
)

// Operations defines standard operation names.
const (
	OpLoad     = "load"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpRestore  = "restore"
	OpAck      = "acknowledge"
	OpNavigate = "navigate"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
