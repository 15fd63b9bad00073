package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// Registered error codes.
const (
	CodeNoRouter        = "E100"
	CodeMalformedTarget = "E101"
	CodeInvalidPattern  = "E102"
	CodeInvalidURL      = "E103"
	CodeHydration       = "E104"
	CodeProtocol        = "E105"
	CodeConfig          = "E106"
)

// registry maps error codes to their templates.
var registry = map[string]Template{
	CodeNoRouter: {
		Category:   CategoryUsage,
		Message:    "Router accessor used outside a router",
		Suggestion: "Render the component beneath router.Router so its context carries the router scope.",
	},
	CodeMalformedTarget: {
		Category:   CategoryUsage,
		Message:    "Malformed navigation target",
		Suggestion: "Pass a path such as \"/users/42\" or an absolute URL.",
	},
	CodeInvalidPattern: {
		Category:   CategoryRouting,
		Message:    "Invalid route pattern",
		Suggestion: "Parameter segments need a name: \":id\" or \"[id]\".",
	},
	CodeInvalidURL: {
		Category:   CategoryUsage,
		Message:    "Invalid router URL",
		Suggestion: "Pass an absolute URL or a path; relative paths resolve against the environment origin.",
	},
	CodeHydration: {
		Category: CategoryHydration,
		Message:  "Hydration mismatch",
	},
	CodeProtocol: {
		Category: CategoryProtocol,
		Message:  "Invalid live session frame",
	},
	CodeConfig: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
}
