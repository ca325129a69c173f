package truck

import (
	"testing"
	"time"
)

func TestValidateYear(t *testing.T) {
	nextYear := time.Now().Year() + 1

	tests := []struct {
		in      int
		wantErr bool
	}{
		{2024, false},
		{1950, false},
		{nextYear, false},
		{0, true},
		{1949, true},
		{nextYear + 1, true},
		{-2020, true},
	}

	for _, tt := range tests {
		err := validateYear(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateYear(%d) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
