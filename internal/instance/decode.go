package instance

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Decode errors. All of them mean the payload can never be processed, so
// callers acknowledge the message and move on.
var (
	// ErrMalformedPayload means the payload is not valid JSON.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrInvalidShape means the payload is JSON but not an object, or a
	// reference field is not a string.
	ErrInvalidShape = errors.New("payload is not a valid instance description")

	// ErrMissingField means a reference field is absent or empty.
	ErrMissingField = errors.New("missing mandatory field")
)

// DecodeReference parses a notification payload into a Reference.
// Fields other than "name" and "zone" are ignored.
func DecodeReference(data []byte) (Reference, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return Reference{}, fmt.Errorf("%w: got %s", ErrInvalidShape, jsonKind(raw))
	}

	name, err := stringField(obj, "name")
	if err != nil {
		return Reference{}, err
	}
	zone, err := stringField(obj, "zone")
	if err != nil {
		return Reference{}, err
	}

	return Reference{Name: name, Zone: zone}, nil
}

func stringField(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %s is %s, not a string", ErrInvalidShape, key, jsonKind(v))
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingField, key)
	}
	return s, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
