package enums

import "fmt"

// ProjectOperation names a gated action against a project resource.
type ProjectOperation string

const (
	ProjectOperationCreate ProjectOperation = "create"
	ProjectOperationEdit   ProjectOperation = "edit"
	ProjectOperationDelete ProjectOperation = "delete"
	ProjectOperationExport ProjectOperation = "export"
	ProjectOperationShare  ProjectOperation = "share"
)

var validProjectOperations = []ProjectOperation{
	ProjectOperationCreate,
	ProjectOperationEdit,
	ProjectOperationDelete,
	ProjectOperationExport,
	ProjectOperationShare,
}

// String implements fmt.Stringer.
func (p ProjectOperation) String() string {
	return string(p)
}

// IsValid reports whether the value matches a gated project operation.
func (p ProjectOperation) IsValid() bool {
	for _, candidate := range validProjectOperations {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProjectOperation converts raw input into ProjectOperation.
func ParseProjectOperation(value string) (ProjectOperation, error) {
	for _, candidate := range validProjectOperations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid project operation %q", value)
}
