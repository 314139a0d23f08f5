package homework

import "fmt"

// Review statuses reported by the status API.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// Verdicts maps every known status to the sentence sent to the chat.
var Verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Homework is a validated subject record.
type Homework struct {
	Name   string
	Status string
}

// Verdict returns the verdict sentence for the homework status.
func (h Homework) Verdict() string {
	return Verdicts[h.Status]
}

// Message renders the status change notification.
func (h Homework) Message() string {
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", h.Name, h.Verdict())
}

// ParseHomework validates a raw record from the homeworks list.
func ParseHomework(record any) (Homework, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return Homework{}, &TypeMismatchError{Field: FieldHomeworks, Want: "list of dict", Got: "list of " + kindOf(record)}
	}
	rawName, ok := fields[FieldName]
	if !ok {
		return Homework{}, &MissingFieldError{Field: FieldName}
	}
	rawStatus := fields[FieldStatus]
	status, _ := rawStatus.(string)
	if _, known := Verdicts[status]; !known {
		return Homework{}, &UnknownStatusError{Status: fmt.Sprint(rawStatus)}
	}
	return Homework{Name: fmt.Sprint(rawName), Status: status}, nil
}

// ParseStatus translates a raw record into the notification text.
func ParseStatus(record any) (string, error) {
	hw, err := ParseHomework(record)
	if err != nil {
		return "", err
	}
	return hw.Message(), nil
}
