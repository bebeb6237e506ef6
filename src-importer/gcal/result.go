package gcal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

type resultEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// ReadResultFile reads an MCP result dump from disk and returns the raw event
// records under its "result" key.
func ReadResultFile(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadResultFile: %w", err)
	}
	records, err := DecodeResult(data)
	if err != nil {
		return nil, fmt.Errorf("ReadResultFile: %w", err)
	}
	return records, nil
}

// DecodeResult unwraps the {"result": [...]} envelope. A missing result key
// yields an empty batch; a result that is present but not an array is an
// error, there is nothing sensible to import from it.
func DecodeResult(data []byte) ([]json.RawMessage, error) {
	var envelope resultEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("DecodeResult: %w", err)
	}
	if envelope.Result == nil {
		return []json.RawMessage{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(envelope.Result, &records); err != nil {
		return nil, fmt.Errorf("DecodeResult: expected an array of events, got %s: %w", jsonKind(envelope.Result), err)
	}
	if records == nil {
		return nil, fmt.Errorf("DecodeResult: expected an array of events, got null")
	}
	return records, nil
}

func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "an empty value"
	}
	switch trimmed[0] {
	case '{':
		return "an object"
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	case 'n':
		return "null"
	default:
		return "a scalar"
	}
}
