package logging

import "log/slog"

// Structured log keys shared by every package.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	// Dedupe fields.
	FieldCategory = "category"
	FieldMerged   = "merged"
	FieldStrategy = "strategy"
)

// commonArgs returns the service and version attributes, skipping empty values.
func commonArgs(service, version string) []any {
	var args []any
	if service != "" {
		args = append(args, slog.String(FieldService, service))
	}
	if version != "" {
		args = append(args, slog.String(FieldVersion, version))
	}
	return args
}
