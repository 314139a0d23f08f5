package homework

import (
	"encoding/json"
	"math"
)

// Keys of the status API payload.
const (
	FieldHomeworks   = "homeworks"
	FieldCurrentDate = "current_date"
	FieldName        = "homework_name"
	FieldStatus      = "status"
)

// CheckResponse validates the shape of a decoded status API payload and
// returns its homework list unchanged, in the order received.
func CheckResponse(payload any) ([]any, error) {
	response, ok := payload.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{Want: "dict", Got: kindOf(payload)}
	}
	raw, ok := response[FieldHomeworks]
	if !ok {
		return nil, &MissingFieldError{Field: FieldHomeworks}
	}
	homeworks, ok := raw.([]any)
	if !ok {
		return nil, &TypeMismatchError{Field: FieldHomeworks, Want: "list", Got: kindOf(raw)}
	}
	return homeworks, nil
}

// CurrentDate returns the server-reported current_date of a validated
// response. ok is false when the field is absent or not an integer.
func CurrentDate(payload any) (ts int64, ok bool) {
	response, isMap := payload.(map[string]any)
	if !isMap {
		return 0, false
	}
	switch v := response[FieldCurrentDate].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
