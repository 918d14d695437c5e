// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envelope normalizes the backend's inconsistent JSON response
// envelopes into one uniform record sequence.
// Implements: prd010-admin-client (response normalization);
//
//	docs/ARCHITECTURE § Client Core.
//
// The backend wraps collection responses differently across endpoints and
// deployments: a bare array, an object with a "data" array, an object with
// an "items" array, or a single object. Decoding classifies the body into a
// closed set of variants so that "unknown shape" stays detectable instead of
// falling through silently. Malformed bodies normalize to the empty
// sequence: callers validate the HTTP status before normalizing, so a body
// that is not JSON means "no data", not an error.
package envelope

import (
	"bytes"
	"encoding/json"
)

// Kind identifies the detected response envelope variant.
type Kind int

const (
	// Empty: the body contained no bytes (or only whitespace).
	Empty Kind = iota
	// List: a bare JSON array of records.
	List
	// Data: an object wrapping the records in a "data" array.
	Data
	// Items: an object wrapping the records in an "items" array.
	Items
	// Object: any other non-null object, treated as a single record.
	Object
	// Scalar: a JSON scalar or null; carries no records.
	Scalar
	// Malformed: the body was not valid JSON; carries no records.
	Malformed
)

// String returns the variant name for logging.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case List:
		return "list"
	case Data:
		return "data"
	case Items:
		return "items"
	case Object:
		return "object"
	case Scalar:
		return "scalar"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// Envelope is a classified response body.
type Envelope struct {
	Kind    Kind
	records []json.RawMessage
}

// Records returns the normalized record sequence in original order. It is
// possibly empty but never nil, so callers can range over it directly.
func (e Envelope) Records() []json.RawMessage {
	if e.records == nil {
		return []json.RawMessage{}
	}
	return e.records
}

// Len returns the number of records in the envelope.
func (e Envelope) Len() int { return len(e.records) }

// wrapped matches the two known wrapper shapes. The fields stay raw so the
// element bytes pass through untouched.
type wrapped struct {
	Data  json.RawMessage `json:"data"`
	Items json.RawMessage `json:"items"`
}

// Decode classifies a response body. It never fails: every input maps to a
// variant, and only List, Data, Items, and Object carry records.
//
// Detection order: empty body, invalid JSON, bare array, object with a
// "data" array, object with an "items" array, other object (single record),
// scalar/null. Decoding an already-bare array is a no-op on the elements.
func Decode(body []byte) Envelope {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Envelope{Kind: Empty}
	}
	if !json.Valid(trimmed) {
		return Envelope{Kind: Malformed}
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return Envelope{Kind: Malformed}
		}
		return Envelope{Kind: List, records: list}

	case '{':
		var w wrapped
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return Envelope{Kind: Malformed}
		}
		if list, ok := asArray(w.Data); ok {
			return Envelope{Kind: Data, records: list}
		}
		if list, ok := asArray(w.Items); ok {
			return Envelope{Kind: Items, records: list}
		}
		return Envelope{Kind: Object, records: []json.RawMessage{trimmed}}

	default:
		// Numbers, strings, booleans, and null carry no records.
		return Envelope{Kind: Scalar}
	}
}

// Records is shorthand for Decode(body).Records().
func Records(body []byte) []json.RawMessage {
	return Decode(body).Records()
}

// asArray reports whether raw holds a JSON array, and unmarshals it if so.
// A "data" or "items" field of any other type does not count as a wrapper.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, false
	}
	return list, true
}
