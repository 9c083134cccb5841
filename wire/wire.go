// Package wire carries repository faults across HTTP boundaries.
//
// Servers call Write to emit a JSON error document with the status the
// fault catalog assigns; clients call Decode to turn an error response
// back into a fault. The document looks like:
//
//	{"kind": "constraint_violation", "message": "...", "ref": "...", "cause": "..."}
//
// Ref is a correlation id taken from the request context (see RequestRef)
// or minted at write time, so a client-side report can be matched to the
// server's logs.
package wire

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/strata-repo/fault"
)

// maxErrorBody bounds how much of an error response Decode reads.
const maxErrorBody = 64 << 10

// Document is the JSON error body.
type Document struct {
	Kind    fault.Kind `json:"kind"`
	Message string     `json:"message"`
	Ref     string     `json:"ref,omitempty"`
	Cause   string     `json:"cause,omitempty"`
}

// contextKey is a custom type for context keys.
type contextKey string

const refKey contextKey = "fault_ref"

// RequestRef assigns each request a correlation ref, reusing the
// X-Request-ID header when the caller supplies one. Write picks the ref up
// from the request context.
func RequestRef(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref := r.Header.Get("X-Request-ID")
		if ref == "" {
			ref = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), refKey, ref)
		w.Header().Set("X-Request-ID", ref)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RefFromContext returns the correlation ref assigned by RequestRef.
func RefFromContext(ctx context.Context) string {
	if ref, ok := ctx.Value(refKey).(string); ok {
		return ref
	}
	return ""
}

// StatusCode returns the HTTP status for err per the fault catalog.
// Non-fault errors and unregistered kinds map to 500.
func StatusCode(err error) int {
	if info, ok := fault.Info(fault.KindOf(err)); ok {
		return info.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Write emits err as an error document on w and returns the ref used.
// Non-fault errors are masked as internal faults: their text belongs in
// server logs, not on the wire.
func Write(w http.ResponseWriter, r *http.Request, err error) string {
	ref := RefFromContext(r.Context())
	if ref == "" {
		ref = uuid.New().String()
	}

	kind := fault.KindOf(err)
	if kind == "" {
		kind = fault.KindInternal
	}

	doc := Document{Kind: kind, Ref: ref}
	if fe, ok := fault.AsError(err); ok {
		doc.Message = fe.Message
		if fe.Err != nil {
			doc.Cause = fe.Err.Error()
		}
	}
	if doc.Message == "" {
		if info, ok := fault.Info(kind); ok {
			doc.Message = info.Summary
		} else {
			doc.Message = "internal error"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(err))
	json.NewEncoder(w).Encode(doc)

	return ref
}

// Decode turns an error response into a fault. Statuses below 400 return
// nil. The body is read but not closed; the response stays the caller's.
//
// The document's kind is authoritative when it parses and is registered in
// the catalog; everything else degrades to KindFromStatus with the body
// text as message.
func Decode(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	ref := resp.Header.Get("X-Request-ID")

	var doc Document
	if err := json.Unmarshal(body, &doc); err == nil && doc.Kind != "" {
		if _, ok := fault.Info(doc.Kind); !ok {
			doc.Kind = KindFromStatus(resp.StatusCode)
		}
		if doc.Ref == "" {
			doc.Ref = ref
		}

		var cause error
		if doc.Cause != "" {
			cause = errors.New(doc.Cause)
		}
		return withRef(fault.Wrap(doc.Kind, cause, doc.Message), doc.Ref)
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return withRef(fault.New(KindFromStatus(resp.StatusCode), msg), ref)
}

// KindFromStatus maps an HTTP status to the most generic kind of its
// family. It is the fallback for responses without a parseable document:
// 404 reads as a path miss and 409 as a constraint breach, the broadest
// members of their families.
func KindFromStatus(code int) fault.Kind {
	switch code {
	case http.StatusBadRequest:
		return fault.KindValueFormat
	case http.StatusUnauthorized:
		return fault.KindLoginFailed
	case http.StatusForbidden:
		return fault.KindAccessDenied
	case http.StatusNotFound:
		return fault.KindPathNotFound
	case http.StatusConflict:
		return fault.KindConstraintViolation
	case http.StatusLocked:
		return fault.KindLockConflict
	case http.StatusTooManyRequests:
		return fault.KindUnavailable
	case http.StatusNotImplemented:
		return fault.KindUnsupportedOperation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fault.KindUnavailable
	default:
		return fault.KindInternal
	}
}

// refError attaches the server correlation ref to a decoded fault.
type refError struct {
	ref string
	err error
}

func (e *refError) Error() string { return e.err.Error() }

func (e *refError) Unwrap() error { return e.err }

func withRef(err error, ref string) error {
	if ref == "" {
		return err
	}
	return &refError{ref: ref, err: err}
}

// Ref extracts the correlation ref from a decoded error. It returns ""
// when the response carried none.
func Ref(err error) string {
	var re *refError
	if errors.As(err, &re) {
		return re.ref
	}
	return ""
}
