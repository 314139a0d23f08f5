package homework

import "fmt"

// TypeMismatchError reports a payload value of the wrong JSON type.
// Field is empty when the whole response is at fault.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Ответ API должен быть типа %s, а пришел %s", e.Want, e.Got)
	}
	return fmt.Sprintf("Ключ %q должен содержать %s, а содержит %s", e.Field, e.Want, e.Got)
}

// MissingFieldError reports a required key absent from a response or record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Некорректный ответ: отсутствует ключ %q", e.Field)
}

// UnknownStatusError reports a status value missing from the verdict table.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("Неизвестный статус проверки: %s", e.Status)
}

// kindOf names the JSON type of a value decoded by encoding/json.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "dict"
	case []any:
		return "list"
	case string:
		return "str"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
