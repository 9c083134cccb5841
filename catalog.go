package fault

import "net/http"

// KindInfo describes one kind in the catalog: its identifier, a short
// summary, the HTTP status it maps to on the wire and its default retry
// classification.
type KindInfo struct {
	Kind       Kind   `json:"kind" yaml:"kind"`
	Summary    string `json:"summary" yaml:"summary"`
	HTTPStatus int    `json:"http_status" yaml:"http_status"`
	Transient  bool   `json:"transient" yaml:"transient"`
}

// catalog is the single source of truth for the taxonomy. Order is the
// documentation order: broad failures first, then the auth, item, schema,
// namespace, locking and query families.
var catalog = []KindInfo{
	{KindInternal, "unclassified failure inside the repository", http.StatusInternalServerError, false},
	{KindUnavailable, "repository or backing service temporarily unreachable", http.StatusServiceUnavailable, true},
	{KindUnsupportedOperation, "optional repository feature is not supported", http.StatusNotImplemented, false},
	{KindLoginFailed, "credentials rejected at repository login", http.StatusUnauthorized, false},
	{KindAccessDenied, "session lacks permission for the attempted operation", http.StatusForbidden, false},
	{KindPathNotFound, "no item exists at the addressed path", http.StatusNotFound, false},
	{KindItemNotFound, "no item exists with the given identifier", http.StatusNotFound, false},
	{KindItemExists, "an item already exists where same-name siblings are not allowed", http.StatusConflict, false},
	{KindInvalidItemState, "the item was changed or removed by another session", http.StatusConflict, false},
	{KindValueFormat, "property value is incompatible with the property type", http.StatusBadRequest, false},
	{KindConstraintViolation, "write would break a node type or schema constraint", http.StatusConflict, false},
	{KindNoSuchNodeType, "referenced node type is not registered", http.StatusBadRequest, false},
	{KindNodeTypeExists, "node type registration collides with an existing type", http.StatusConflict, false},
	{KindInvalidNodeTypeDefinition, "node type definition is malformed", http.StatusBadRequest, false},
	{KindReferentialIntegrity, "item removal rejected while references to it remain", http.StatusConflict, false},
	{KindNamespaceViolation, "namespace registration or resolution rule was broken", http.StatusBadRequest, false},
	{KindNoSuchWorkspace, "the named workspace is not known to the repository", http.StatusNotFound, false},
	{KindLockConflict, "item is locked by another session or the lock token is missing", http.StatusLocked, true},
	{KindVersionConflict, "versioning rule forbids the operation on this node", http.StatusConflict, false},
	{KindMergeConflict, "merge between workspaces produced a conflict", http.StatusConflict, false},
	{KindQueryInvalid, "query text is not valid for the dialect", http.StatusBadRequest, false},
	{KindSerializedDataInvalid, "imported serialized content is structurally invalid", http.StatusBadRequest, false},
}

// Catalog returns the full kind catalog in documentation order. The
// returned slice is a copy.
func Catalog() []KindInfo {
	out := make([]KindInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Info returns the catalog entry for a kind.
func Info(k Kind) (KindInfo, bool) {
	for _, info := range catalog {
		if info.Kind == k {
			return info, true
		}
	}
	return KindInfo{}, false
}
