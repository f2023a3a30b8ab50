package validator

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

type shiftInput struct {
	Name      string   `validate:"required"`
	StartTime string   `validate:"required,hhmm"`
	EndTime   string   `validate:"required,hhmm"`
	Days      []string `validate:"dive,weekday"`
	Color     string   `validate:"omitempty,hexcolor6"`
}

type assignInput struct {
	ShiftID uuid.UUID `validate:"uuid_required"`
	Period  string    `validate:"omitempty,period"`
}

func TestIsHHMM(t *testing.T) {
	cases := map[string]bool{
		"00:00": true,
		"08:30": true,
		"23:59": true,
		"24:00": false,
		"7:30":  false,
		"12:60": false,
		"":      false,
	}
	for in, want := range cases {
		if got := IsHHMM(in); got != want {
			t.Errorf("IsHHMM(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateStruct(t *testing.T) {
	cases := []struct {
		name    string
		in      interface{}
		wantTag string
	}{
		{"valid", shiftInput{Name: "Morning", StartTime: "08:00", EndTime: "16:00", Days: []string{"Monday"}, Color: "#10B981"}, ""},
		{"bad time", shiftInput{Name: "Morning", StartTime: "8am", EndTime: "16:00"}, "hhmm"},
		{"bad day", shiftInput{Name: "Morning", StartTime: "08:00", EndTime: "16:00", Days: []string{"Funday"}}, "weekday"},
		{"bad color", shiftInput{Name: "Morning", StartTime: "08:00", EndTime: "16:00", Color: "blue"}, "hexcolor6"},
		{"missing name", shiftInput{StartTime: "08:00", EndTime: "16:00"}, "required"},
		{"nil uuid", assignInput{}, "uuid_required"},
		{"bad period", assignInput{ShiftID: uuid.New(), Period: "2024-13"}, "period"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateStruct(tc.in)
			if tc.wantTag == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %s", Message(errs))
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("expected %s failure", tc.wantTag)
			}
			if errs[0].Tag != tc.wantTag {
				t.Fatalf("tag = %s, want %s", errs[0].Tag, tc.wantTag)
			}
			if !strings.HasPrefix(Message(errs), "Validation failed: Field '") {
				t.Fatalf("message = %q", Message(errs))
			}
		})
	}
}
