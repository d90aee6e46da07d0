package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 20000-20099: Config location errors
// 20100-20199: Config document errors
// 20200-20299: Template errors
// 20300-20399: Scaffolding & open command errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalError ErrorCode = 10001
	InvalidParams ErrorCode = 10002
	NotFound      ErrorCode = 10003

	// Validation errors (10300-10399)
	ValidationFailed   ErrorCode = 10300
	InvalidFormat      ErrorCode = 10301
	InvalidValue       ErrorCode = 10302
	RequiredFieldEmpty ErrorCode = 10303

	// ========== Config Location Errors (20000-20099) ==========

	ConfigNotFound  ErrorCode = 20000
	InvalidEncoding ErrorCode = 20001
	PackageMetadata ErrorCode = 20002

	// ========== Config Document Errors (20100-20199) ==========

	ConfigReadFailed        ErrorCode = 20100
	ConfigParseFailed       ErrorCode = 20101
	VariantResolutionFailed ErrorCode = 20102
	TemplateMissing         ErrorCode = 20103

	// ========== Template Errors (20200-20299) ==========

	TemplateCompileFailed ErrorCode = 20200
	TemplateRenderFailed  ErrorCode = 20201

	// ========== Scaffolding & Open Errors (20300-20399) ==========

	GenerateFailed   ErrorCode = 20300
	OpenScriptFailed ErrorCode = 20301
	WarningFailed    ErrorCode = 20302
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:       "Success",
	InternalError: "Internal error",
	InvalidParams: "Invalid parameters",
	NotFound:      "Resource not found",

	// Validation
	ValidationFailed:   "Validation failed",
	InvalidFormat:      "Invalid format",
	InvalidValue:       "Invalid value",
	RequiredFieldEmpty: "Required field is empty",

	// Location
	ConfigNotFound:  "Could not find compete.toml",
	InvalidEncoding: "Path is not valid UTF-8",
	PackageMetadata: "Could not read package metadata",

	// Document
	ConfigReadFailed:        "Could not read config file",
	ConfigParseFailed:       "Could not parse config file",
	VariantResolutionFailed: "No candidate shape matched",
	TemplateMissing:         "`template` or `new.template` is required",

	// Template
	TemplateCompileFailed: "Template syntax error",
	TemplateRenderFailed:  "Failed to render template",

	// Scaffolding & open
	GenerateFailed:   "Failed to generate compete.toml",
	OpenScriptFailed: "Failed to evaluate `open`",
	WarningFailed:    "Failed to emit warning",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// ExitCode returns the recommended process exit status for the error code
func (c ErrorCode) ExitCode() int {
	switch {
	case c == Success:
		return 0
	case c == InvalidParams, c >= 10300 && c < 10400: // Usage & validation errors
		return 2
	case c >= 20000 && c < 20100: // Location errors
		return 3
	case c >= 20100 && c < 20300: // Document & template errors
		return 4
	default:
		return 1
	}
}
