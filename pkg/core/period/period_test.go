package period

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Period
		wantErr bool
	}{
		{"January", "202501", Period{2025, 1}, false},
		{"December", "202412", Period{2024, 12}, false},
		{"Lower bound", "200001", Period{2000, 1}, false},
		{"Upper bound", "210012", Period{2100, 12}, false},
		{"Month zero", "202500", Period{}, true},
		{"Month thirteen", "202513", Period{}, true},
		{"Year too early", "199912", Period{}, true},
		{"Year too late", "210101", Period{}, true},
		{"Too short", "20251", Period{}, true},
		{"Too long", "2025011", Period{}, true},
		{"Non-digit", "2025a1", Period{}, true},
		{"Signed", "-20251", Period{}, true},
		{"Empty", "", Period{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPeriod) {
					t.Fatalf("Parse(%q) error = %v, want ErrMalformedPeriod", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestPrev(t *testing.T) {
	tests := []struct {
		in   Period
		want Period
	}{
		{Period{2024, 5}, Period{2024, 4}},
		{Period{2024, 1}, Period{2023, 12}},
		{Period{2024, 12}, Period{2024, 11}},
	}
	for _, tt := range tests {
		if got := tt.in.Prev(); got != tt.want {
			t.Errorf("%v.Prev() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDocumentID(t *testing.T) {
	if got := DocumentID("store-42", Period{2025, 3}); got != "store-42_202503" {
		t.Errorf("DocumentID = %q", got)
	}
}
