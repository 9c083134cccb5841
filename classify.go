package fault

import "errors"

// KindOf returns the kind of the first repository error in err's chain. A
// repository error with an unset kind reports KindInternal. KindOf returns
// the empty kind when the chain holds no repository error at all.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	if e.Kind == "" {
		return KindInternal
	}
	return e.Kind
}

// AsError extracts the first repository error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err carries a repository error of the given kind.
// When faults wrap faults, the outermost kind decides.
func IsKind(err error, kind Kind) bool {
	return kind != "" && KindOf(err) == kind
}

// Transient reports whether err may succeed if retried unchanged. Only
// repository errors of transient kinds qualify; everything else, including
// non-repository errors, counts as permanent.
func Transient(err error) bool {
	return KindOf(err).Transient()
}

// IsInternal reports whether err is an unclassified repository failure.
func IsInternal(err error) bool { return IsKind(err, KindInternal) }

// IsUnavailable reports whether err is a repository availability failure.
func IsUnavailable(err error) bool { return IsKind(err, KindUnavailable) }

// IsUnsupportedOperation reports whether err marks an unsupported feature.
func IsUnsupportedOperation(err error) bool { return IsKind(err, KindUnsupportedOperation) }

// IsLoginFailed reports whether err is a rejected repository login.
func IsLoginFailed(err error) bool { return IsKind(err, KindLoginFailed) }

// IsAccessDenied reports whether err is a permission failure.
func IsAccessDenied(err error) bool { return IsKind(err, KindAccessDenied) }

// IsPathNotFound reports whether err is a path miss.
func IsPathNotFound(err error) bool { return IsKind(err, KindPathNotFound) }

// IsItemNotFound reports whether err is an identifier miss.
func IsItemNotFound(err error) bool { return IsKind(err, KindItemNotFound) }

// IsItemExists reports whether err is a same-name item collision.
func IsItemExists(err error) bool { return IsKind(err, KindItemExists) }

// IsInvalidItemState reports whether err is a stale item state failure.
func IsInvalidItemState(err error) bool { return IsKind(err, KindInvalidItemState) }

// IsValueFormat reports whether err is a property value type mismatch.
func IsValueFormat(err error) bool { return IsKind(err, KindValueFormat) }

// IsConstraintViolation reports whether err is a node type or schema
// constraint breach.
func IsConstraintViolation(err error) bool { return IsKind(err, KindConstraintViolation) }

// IsNoSuchNodeType reports whether err references an unregistered node type.
func IsNoSuchNodeType(err error) bool { return IsKind(err, KindNoSuchNodeType) }

// IsNodeTypeExists reports whether err is a node type registration collision.
func IsNodeTypeExists(err error) bool { return IsKind(err, KindNodeTypeExists) }

// IsInvalidNodeTypeDefinition reports whether err is a malformed node type
// definition.
func IsInvalidNodeTypeDefinition(err error) bool { return IsKind(err, KindInvalidNodeTypeDefinition) }

// IsReferentialIntegrity reports whether err is a rejected removal of a
// still-referenced item.
func IsReferentialIntegrity(err error) bool { return IsKind(err, KindReferentialIntegrity) }

// IsNamespaceViolation reports whether err is a namespace rule breach.
func IsNamespaceViolation(err error) bool { return IsKind(err, KindNamespaceViolation) }

// IsNoSuchWorkspace reports whether err names an unknown workspace.
func IsNoSuchWorkspace(err error) bool { return IsKind(err, KindNoSuchWorkspace) }

// IsLockConflict reports whether err is a lock contention failure.
func IsLockConflict(err error) bool { return IsKind(err, KindLockConflict) }

// IsVersionConflict reports whether err is a versioning rule breach.
func IsVersionConflict(err error) bool { return IsKind(err, KindVersionConflict) }

// IsMergeConflict reports whether err is a workspace merge conflict.
func IsMergeConflict(err error) bool { return IsKind(err, KindMergeConflict) }

// IsQueryInvalid reports whether err is a malformed query.
func IsQueryInvalid(err error) bool { return IsKind(err, KindQueryInvalid) }

// IsSerializedDataInvalid reports whether err is an invalid import.
func IsSerializedDataInvalid(err error) bool { return IsKind(err, KindSerializedDataInvalid) }
