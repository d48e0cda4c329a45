package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPath        = "path"
	FieldCount       = "count"
	FieldKind        = "kind"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldBackend     = "backend"
	FieldSheetsRef   = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentConsole = "console"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentReport  = "report"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpLoad    = "load"
	OpAppend  = "append"
	OpSummary = "summary"
	OpExport  = "export"
	OpAnalyze = "analyze"
	OpPublish = "publish"
	OpRender  = "render"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithPath adds the file path field
func (f LogFields) WithPath(path string) LogFields {
	f[FieldPath] = path
	return f
}

// WithCount adds a record count field
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(kind string, amount float64, category, description string) LogFields {
	f[FieldKind] = kind
	f[FieldAmount] = amount
	f[FieldCategory] = category
	f[FieldDescription] = description
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
