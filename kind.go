package fault

import "strings"

// Kind names one category of repository failure.
//
// The set of kinds is closed: one kind per failure class a caller might
// handle differently. Kind strings are stable identifiers and appear in
// logs, metrics and wire documents.
type Kind string

const (
	// Broad failures.

	// KindInternal is an unclassified failure inside the repository.
	KindInternal Kind = "internal"
	// KindUnavailable means the repository or a backing service could not
	// be reached. Retryable.
	KindUnavailable Kind = "unavailable"
	// KindUnsupportedOperation means an optional repository feature is not
	// supported by this implementation.
	KindUnsupportedOperation Kind = "unsupported_operation"

	// Authentication and authorization.

	// KindLoginFailed means the credentials were rejected at login.
	KindLoginFailed Kind = "login_failed"
	// KindAccessDenied means the session lacks permission for the
	// attempted operation.
	KindAccessDenied Kind = "access_denied"

	// Item addressing and state.

	// KindPathNotFound means no item exists at the addressed path.
	KindPathNotFound Kind = "path_not_found"
	// KindItemNotFound means no item exists with the given identifier.
	KindItemNotFound Kind = "item_not_found"
	// KindItemExists means an item already exists where same-name siblings
	// are not allowed.
	KindItemExists Kind = "item_exists"
	// KindInvalidItemState means the item was changed or removed by
	// another session since it was read.
	KindInvalidItemState Kind = "invalid_item_state"
	// KindValueFormat means a property value is incompatible with the
	// property type.
	KindValueFormat Kind = "value_format"

	// Schema and node types.

	// KindConstraintViolation means a write would break a node type or
	// schema constraint.
	KindConstraintViolation Kind = "constraint_violation"
	// KindNoSuchNodeType means a referenced node type is not registered.
	KindNoSuchNodeType Kind = "no_such_node_type"
	// KindNodeTypeExists means a node type registration collides with an
	// existing type.
	KindNodeTypeExists Kind = "node_type_exists"
	// KindInvalidNodeTypeDefinition means a node type definition is
	// malformed.
	KindInvalidNodeTypeDefinition Kind = "invalid_node_type_definition"
	// KindReferentialIntegrity means an item removal was rejected while
	// references to it remain.
	KindReferentialIntegrity Kind = "referential_integrity"

	// Namespaces and workspaces.

	// KindNamespaceViolation means a namespace registration or resolution
	// rule was broken.
	KindNamespaceViolation Kind = "namespace_violation"
	// KindNoSuchWorkspace means the named workspace is not known to the
	// repository.
	KindNoSuchWorkspace Kind = "no_such_workspace"

	// Locking, versioning and merging.

	// KindLockConflict means the item is locked elsewhere or the lock
	// token is missing. Retryable.
	KindLockConflict Kind = "lock_conflict"
	// KindVersionConflict means a versioning rule forbids the operation.
	KindVersionConflict Kind = "version_conflict"
	// KindMergeConflict means a merge between workspaces produced a
	// conflict.
	KindMergeConflict Kind = "merge_conflict"

	// Queries and serialization.

	// KindQueryInvalid means the query text is not valid for its dialect.
	KindQueryInvalid Kind = "query_invalid"
	// KindSerializedDataInvalid means imported serialized content is
	// structurally invalid.
	KindSerializedDataInvalid Kind = "serialized_data_invalid"
)

// String returns the kind identifier.
func (k Kind) String() string { return string(k) }

// Transient reports whether failures of this kind may succeed when retried
// without changing the request. Correctable kinds such as constraint
// violations are not transient: replaying the same write cannot succeed
// until the caller fixes it.
func (k Kind) Transient() bool {
	info, ok := Info(k)
	return ok && info.Transient
}

// label turns a kind into prose for error text.
func (k Kind) label() string {
	if k == "" {
		return "repository error"
	}
	return strings.ReplaceAll(string(k), "_", " ")
}
