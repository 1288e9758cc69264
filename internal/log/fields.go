package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOwnerID       = "owner_id"
	FieldTransactionID = "transaction_id"
	FieldTemplateID    = "template_id"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldKind          = "kind"
	FieldFrequency     = "frequency"
	FieldGenerated     = "generated"
	FieldWatermark     = "watermark"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentRecurring = "recurring"
	ComponentAnalytics = "analytics"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
)
