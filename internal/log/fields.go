package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldID        = "id"
	FieldType      = "type"
	FieldAmount    = "amount"
	FieldKey       = "key"
	FieldBytes     = "bytes"
	FieldPath      = "path"
	FieldBackend   = "backend"
	FieldPeriod    = "period"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentBackup  = "backup"
	ComponentExport  = "export"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpCreate = "create"
	OpRead   = "read"
	OpUpdate = "update"
	OpDelete = "delete"
	OpImport = "import"
	OpExport = "export"
)
