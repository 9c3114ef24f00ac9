package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList decodes a list response that is either a bare JSON array or an
// envelope object carrying the array under the given field name. Anything
// else is an unexpected-shape error. This is the single place where the
// API's two historical list shapes are reconciled.
func decodeList[T any](data []byte, envelope string) ([]T, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, &Error{Kind: KindUnexpectedShape, Message: "empty response body"}
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode array: %v", err)}
		}
		return items, nil
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode envelope: %v", err)}
		}
		raw, ok := env[envelope]
		if !ok {
			return nil, &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("envelope field %q missing", envelope)}
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode %q field: %v", envelope, err)}
		}
		return items, nil
	}

	return nil, &Error{Kind: KindUnexpectedShape, Message: "response is neither array nor object"}
}

// decodeRecord decodes a single-record response that is either the record
// itself or an envelope object carrying it under the given field name.
func decodeRecord[T any](data []byte, envelope string) (T, error) {
	var zero T

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode record: %v", err)}
	}
	if raw, ok := env[envelope]; ok {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return zero, &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode %q field: %v", envelope, err)}
		}
		return rec, nil
	}

	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return zero, &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf("decode record: %v", err)}
	}
	return rec, nil
}
