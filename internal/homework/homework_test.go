package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		wantErr any
	}{
		{"empty list", `{"homeworks": []}`, 0, nil},
		{"two records", `{"homeworks": [{"homework_name":"a"},{"homework_name":"b"}], "current_date": 1}`, 2, nil},
		{"list payload", `[{"homeworks": []}]`, 0, &TypeMismatchError{}},
		{"string payload", `"oops"`, 0, &TypeMismatchError{}},
		{"null payload", `null`, 0, &TypeMismatchError{}},
		{"no homeworks", `{"current_date": 1}`, 0, &MissingFieldError{}},
		{"homeworks is string", `{"homeworks": "not-a-list"}`, 0, &TypeMismatchError{}},
		{"homeworks is dict", `{"homeworks": {}}`, 0, &TypeMismatchError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckResponse(decode(t, tt.payload))
			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(got) != tt.want {
					t.Errorf("len = %d, want %d", len(got), tt.want)
				}
			case *TypeMismatchError:
				if !errors.As(err, &want) {
					t.Fatalf("error = %v, want *TypeMismatchError", err)
				}
			case *MissingFieldError:
				if !errors.As(err, &want) {
					t.Fatalf("error = %v, want *MissingFieldError", err)
				}
				if want.Field != FieldHomeworks {
					t.Errorf("field = %q", want.Field)
				}
			}
		})
	}
}

func TestCheckResponsePreservesOrder(t *testing.T) {
	got, err := CheckResponse(decode(t, `{"homeworks": [{"homework_name":"first"},{"homework_name":"second"}]}`))
	if err != nil {
		t.Fatalf("CheckResponse: %v", err)
	}
	first := got[0].(map[string]any)[FieldName]
	second := got[1].(map[string]any)[FieldName]
	if first != "first" || second != "second" {
		t.Errorf("order = %v, %v", first, second)
	}
}

func TestTypeMismatchMessage(t *testing.T) {
	_, err := CheckResponse(decode(t, `{"homeworks": "not-a-list"}`))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"homeworks"`) || !strings.Contains(msg, "str") {
		t.Errorf("message = %q", msg)
	}
}

func TestParseStatusKnown(t *testing.T) {
	for status, verdict := range Verdicts {
		t.Run(status, func(t *testing.T) {
			msg, err := ParseStatus(map[string]any{FieldName: "hw1", FieldStatus: status})
			if err != nil {
				t.Fatalf("ParseStatus: %v", err)
			}
			want := `Изменился статус проверки работы "hw1". ` + verdict
			if msg != want {
				t.Errorf("msg = %q, want %q", msg, want)
			}
		})
	}
}

func TestParseStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		record any
		check  func(error) bool
	}{
		{
			name:   "missing name",
			record: map[string]any{FieldStatus: StatusApproved},
			check: func(err error) bool {
				var e *MissingFieldError
				return errors.As(err, &e) && e.Field == FieldName
			},
		},
		{
			name:   "unknown status",
			record: map[string]any{FieldName: "hw", FieldStatus: "lost"},
			check: func(err error) bool {
				var e *UnknownStatusError
				return errors.As(err, &e) && e.Status == "lost"
			},
		},
		{
			name:   "missing status",
			record: map[string]any{FieldName: "hw"},
			check: func(err error) bool {
				var e *UnknownStatusError
				return errors.As(err, &e)
			},
		},
		{
			name:   "non-string status",
			record: map[string]any{FieldName: "hw", FieldStatus: float64(1)},
			check: func(err error) bool {
				var e *UnknownStatusError
				return errors.As(err, &e) && e.Status == "1"
			},
		},
		{
			name:   "record is not a mapping",
			record: "hw",
			check: func(err error) bool {
				var e *TypeMismatchError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatus(tt.record)
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCurrentDate(t *testing.T) {
	tests := []struct {
		payload string
		want    int64
		ok      bool
	}{
		{`{"homeworks": [], "current_date": 1000}`, 1000, true},
		{`{"homeworks": []}`, 0, false},
		{`{"homeworks": [], "current_date": "1000"}`, 0, false},
		{`{"homeworks": [], "current_date": 10.5}`, 0, false},
		{`[]`, 0, false},
	}
	for _, tt := range tests {
		got, ok := CurrentDate(decode(t, tt.payload))
		if got != tt.want || ok != tt.ok {
			t.Errorf("CurrentDate(%s) = %d, %v; want %d, %v", tt.payload, got, ok, tt.want, tt.ok)
		}
	}
}
