package ai

import "testing"

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  \n{\"a\":1}\n ", `{"a":1}`},
		{"prose untouched", "Destination: Paris", "Destination: Paris"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSON(tt.in); got != tt.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
