package export

import "testing"

func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"2024", 2024, false},
		{"2000", 2000, false},
		{"2024abc", 0, true},
		{"abc", 0, true},
		{"1999", 0, true},
		{"", 0, true},
		{"20 24", 0, true},
	}

	for _, tt := range tests {
		got, err := parseYear(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseYear(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
