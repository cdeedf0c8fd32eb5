package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType tags log lines with a machine-greppable event name.
	FieldEventType = "event_type"
	// FieldErrorHint carries the operator-facing next step for a failure.
	FieldErrorHint = "error_hint"
	// FieldProbe is the standardized key for measurement source names.
	FieldProbe = "probe"
	// FieldRunID is the standardized key for identification run identifiers.
	FieldRunID = "run_id"
	// FieldIdentifier is the standardized key for computed fingerprints.
	FieldIdentifier = "identifier"
)
