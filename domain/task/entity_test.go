package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPriority_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr bool
	}{
		{name: "low", input: `"low"`, want: PriorityLow},
		{name: "medium", input: `"medium"`, want: PriorityMedium},
		{name: "high", input: `"high"`, want: PriorityHigh},
		{name: "unknown level", input: `"urgent"`, wantErr: true},
		{name: "wrong case", input: `"HIGH"`, wantErr: true},
		{name: "empty string", input: `""`, wantErr: true},
		{name: "not a string", input: `3`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Priority
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s, got priority %v", tt.input, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if p != tt.want {
				t.Errorf("priority = %v, want %v", p, tt.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		original := NewDate(2026, time.March, 15)

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(data) != `"2026-03-15"` {
			t.Errorf("marshaled date = %s, want \"2026-03-15\"", data)
		}

		var decoded Date
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !decoded.Equal(original.Time) {
			t.Errorf("roundtrip date = %v, want %v", decoded, original)
		}
	})

	t.Run("rejects other formats", func(t *testing.T) {
		inputs := []string{
			`"15/03/2026"`,
			`"2026-03-15T00:00:00Z"`,
			`"not a date"`,
			`20260315`,
		}
		for _, input := range inputs {
			var d Date
			if err := json.Unmarshal([]byte(input), &d); err == nil {
				t.Errorf("expected error for %s", input)
			}
		}
	})
}

func TestDate_Scan(t *testing.T) {
	want := NewDate(2026, time.March, 15)

	t.Run("from string", func(t *testing.T) {
		var d Date
		if err := d.Scan("2026-03-15"); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if !d.Equal(want.Time) {
			t.Errorf("scanned date = %v, want %v", d, want)
		}
	})

	t.Run("from time", func(t *testing.T) {
		var d Date
		if err := d.Scan(want.Time); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if !d.Equal(want.Time) {
			t.Errorf("scanned date = %v, want %v", d, want)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		var d Date
		if err := d.Scan(42); err == nil {
			t.Error("expected error for unsupported type")
		}
	})
}
