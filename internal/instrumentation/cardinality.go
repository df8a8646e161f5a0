package instrumentation

import "strings"

// Common operation types for Google API metrics.
const (
	OperationList    = "list"
	OperationGet     = "get"
	OperationCreate  = "create"
	OperationUpdate  = "update"
	OperationAppend  = "append"
	OperationClear   = "clear"
	OperationDelete  = "delete"
	OperationResolve = "resolve"
	OperationModify  = "modify"
	OperationBatch   = "batch_update"
	OperationOther   = "other"
)

var knownServices = map[string]bool{
	ServiceDocs:   true,
	ServiceSheets: true,
	ServiceDrive:  true,
	ServiceGmail:  true,
}

// operationPrefixes are matched in order against the verb that follows the
// service prefix of a tool name.
var operationPrefixes = []struct {
	prefix    string
	operation string
}{
	{"batch_update", OperationBatch},
	{"list", OperationList},
	{"get", OperationGet},
	{"create", OperationCreate},
	{"update", OperationUpdate},
	{"append", OperationAppend},
	{"clear", OperationClear},
	{"delete", OperationDelete},
	{"resolve", OperationResolve},
	{"modify", OperationModify},
}

// ToolLabels derives low-cardinality service and operation labels from a
// tool name such as "sheets_update_values". Unknown shapes map to "other".
//
// Example:
//
//	ToolLabels("drive_list_comments")  // "drive", "list"
//	ToolLabels("docs_batch_update")    // "docs", "batch_update"
//	ToolLabels("unknown")              // "other", "other"
func ToolLabels(toolName string) (service, operation string) {
	service, verb, ok := strings.Cut(toolName, "_")
	if !ok || !knownServices[service] {
		return OperationOther, OperationOther
	}
	for _, p := range operationPrefixes {
		if strings.HasPrefix(verb, p.prefix) {
			return service, p.operation
		}
	}
	return service, OperationOther
}
