package maintenance

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestValidateCost(t *testing.T) {
	tests := []struct {
		in      float64
		wantErr bool
	}{
		{75, false},
		{0.01, false},
		{0, true},
		{-5, true},
	}

	for _, tt := range tests {
		err := validateCost(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateCost(%v) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidateMileage(t *testing.T) {
	tests := []struct {
		in      float64
		wantErr bool
	}{
		{125000, false},
		{0.5, false},
		{0, true},
		{-100, true},
	}

	for _, tt := range tests {
		err := validateMileage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateMileage(%v) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"regular service", "regular service", false},
		{"  padded  ", "padded", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		got, err := validateDescription(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateDescription(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("validateDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidationErrorsAreBadRequest(t *testing.T) {
	for _, err := range []error{
		validateCost(0),
		validateMileage(0),
	} {
		var fe *fiber.Error
		if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
			t.Errorf("expected 400 fiber error, got %v", err)
		}
	}

	if _, err := validateDescription(" "); err != nil {
		var fe *fiber.Error
		if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
			t.Errorf("expected 400 fiber error, got %v", err)
		}
	} else {
		t.Error("blank description should be rejected")
	}
}
