package validator

import (
	"strings"
	"testing"

	"github.com/Xunop/aldiaa/internal/model"
)

func TestValidateBookForm(t *testing.T) {
	tests := []struct {
		name    string
		form    *model.BookForm
		wantErr bool
	}{
		{"nil form", nil, true},
		{"blank form", &model.BookForm{}, false},
		{"zero volumes are clamped later", &model.BookForm{Title: "x", Volumes: 0}, false},
		{"long title", &model.BookForm{Title: strings.Repeat("ك", maxFieldLength+1)}, true},
		{"title at the limit", &model.BookForm{Title: strings.Repeat("ك", maxFieldLength)}, false},
		{"long notes", &model.BookForm{Notes: strings.Repeat("n", maxNotesLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookForm(tt.form)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBookForm() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLoginRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.UserLoginRequest
		wantErr bool
	}{
		{"nil request", nil, true},
		{"empty email", &model.UserLoginRequest{}, true},
		{"invalid email", &model.UserLoginRequest{Email: "not-an-email"}, true},
		{"valid email", &model.UserLoginRequest{Email: " reader@example.com "}, false},
		{"provider without email", &model.UserLoginRequest{Provider: "google"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLoginRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLoginRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
