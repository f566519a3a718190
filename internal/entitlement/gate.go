package entitlement

import "github.com/lumoworks/licensing-backend/pkg/enums"

// Permits reports whether the access level allows the operation. Unknown
// operations deny.
func Permits(operation enums.ProjectOperation, access ProjectAccessLevel) bool {
	switch operation {
	case enums.ProjectOperationCreate:
		return access.CanCreate
	case enums.ProjectOperationEdit:
		return access.CanEdit
	case enums.ProjectOperationDelete:
		return access.CanDelete
	case enums.ProjectOperationExport:
		return access.CanExport
	case enums.ProjectOperationShare:
		return access.CanShare
	default:
		return false
	}
}

// DecideOperation checks a requested operation against the bound context.
// An invalid or expired license denies as a license problem; a valid license
// missing the capability denies as a permission problem. The two map to
// different HTTP statuses downstream and must stay distinct.
func DecideOperation(lc RequestLicenseContext, operation enums.ProjectOperation) Decision {
	if !lc.Validation.IsValid {
		return Decision{
			Violation: enums.ViolationInvalidLicense,
			Operation: operation,
		}
	}
	if !Permits(operation, lc.ProjectAccess) {
		return Decision{
			Violation: enums.ViolationInsufficientPermissions,
			Operation: operation,
		}
	}
	return Allow()
}

// AllowedOperations lists the operations the access level grants, in the
// fixed create/edit/delete/export/share order.
func AllowedOperations(access ProjectAccessLevel) []string {
	ops := []string{}
	for _, op := range []enums.ProjectOperation{
		enums.ProjectOperationCreate,
		enums.ProjectOperationEdit,
		enums.ProjectOperationDelete,
		enums.ProjectOperationExport,
		enums.ProjectOperationShare,
	} {
		if Permits(op, access) {
			ops = append(ops, op.String())
		}
	}
	return ops
}
