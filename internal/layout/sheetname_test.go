package layout

import (
	"strings"
	"testing"
)

func TestSheetName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "ORDERS", want: "ORDERS"},
		{name: "disallowed characters", input: "A:B/C\\D?E*F[G]", want: "A_B_C_D_E_F_G_"},
		{name: "leading and trailing quotes", input: "'ORDERS'", want: "ORDERS"},
		{name: "truncated", input: strings.Repeat("X", 40), want: strings.Repeat("X", 31)},
		{name: "truncated by runes", input: strings.Repeat("목", 35), want: strings.Repeat("목", 31)},
		{name: "quote at the cut", input: strings.Repeat("A", 30) + "'B", want: strings.Repeat("A", 30)},
		{name: "quotes before the cut", input: strings.Repeat("A", 29) + "''B", want: strings.Repeat("A", 29)},
		{name: "inner quote kept", input: "O'BRIEN", want: "O'BRIEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SheetName(tt.input); got != tt.want {
				t.Errorf("SheetName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNamerAssign(t *testing.T) {
	n := NewNamer("Contents")

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "ORDERS", want: "ORDERS"},
		{input: "orders", want: "orders~2"},
		{input: "Orders", want: "Orders~3"},
		{input: "CONTENTS", want: "CONTENTS~2"},
		{input: "''", wantErr: true},
		{input: strings.Repeat("B", 28) + "'CD", want: strings.Repeat("B", 28) + "'CD"},
		{input: strings.Repeat("b", 28) + "'cd", want: strings.Repeat("b", 28) + "~2"},
	}

	for _, tt := range tests {
		got, err := n.Assign(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Assign(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Assign(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Assign(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
