package model

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestStringListFieldsParse(t *testing.T) {
	cases := []struct {
		name  string
		model interface{}
		field string
	}{
		{"employee sessions", &Employee{}, "AllowedSessions"},
		{"shift days", &Shift{}, "Days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := schema.Parse(tc.model, &sync.Map{}, schema.NamingStrategy{})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			f := s.LookUpField(tc.field)
			if f == nil {
				t.Fatalf("field %s missing", tc.field)
			}
			if f.DataType != "text" {
				t.Fatalf("data type = %q, want text", f.DataType)
			}
		})
	}
}

func TestStringListRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   StringList
	}{
		{"nil", nil},
		{"empty", StringList{}},
		{"values", StringList{"Monday", "Friday"}},
		{"quoted", StringList{"a,b", `c"d`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.in.Value()
			if err != nil {
				t.Fatalf("value: %v", err)
			}
			var out StringList
			if err := out.Scan(v); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if len(out) != len(tc.in) {
				t.Fatalf("got %v, want %v", out, tc.in)
			}
			for i := range out {
				if out[i] != tc.in[i] {
					t.Fatalf("got %v, want %v", out, tc.in)
				}
			}
		})
	}
}
