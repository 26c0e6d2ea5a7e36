package common

import "testing"

func TestHasAnyFold(t *testing.T) {
	tests := []struct {
		s    string
		subs []string
		want bool
	}{
		{"Monday Night", []string{"night"}, true},
		{"TONIGHT", []string{"night"}, true},
		{"Monday", []string{"night"}, false},
		{"Overnight", []string{"day", "night"}, true},
		{"", []string{"night"}, false},
		{"anything", nil, false},
	}

	for _, tt := range tests {
		if got := HasAnyFold(tt.s, tt.subs...); got != tt.want {
			t.Errorf("HasAnyFold(%q, %v) = %v, want %v", tt.s, tt.subs, got, tt.want)
		}
	}
}
