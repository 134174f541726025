package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsAppError(t *testing.T) {
	plain := errors.New("mongo down")
	wrapped := fmt.Errorf("load post: %w", NotFound("Post not found"))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"plain error becomes internal", plain, http.StatusInternalServerError, CodeInternalError},
		{"wrapped app error is unwrapped", wrapped, http.StatusNotFound, CodeNotFound},
		{"validation", ValidationFailed(FieldError{Msg: "Text is required", Param: "text"}), http.StatusBadRequest, CodeValidationFailed},
		{"no token", NoToken(), http.StatusUnauthorized, CodeNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsAppError(tt.err)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
			if GetHTTPStatus(tt.err) != tt.wantStatus {
				t.Errorf("GetHTTPStatus = %d, want %d", GetHTTPStatus(tt.err), tt.wantStatus)
			}
		})
	}
}

func TestValidationFailed_UsesFirstMessage(t *testing.T) {
	err := ValidationFailed(
		FieldError{Msg: "Name is required", Param: "name"},
		FieldError{Msg: "Please include a valid email", Param: "email"},
	)
	if err.Message != "Name is required" {
		t.Fatalf("message = %q", err.Message)
	}
	if len(err.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(err.Fields))
	}
}

func TestInternalWithError_KeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := InternalWithError(cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
	if err.Message != "Server error" {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestDatabaseError_HidesDriverError(t *testing.T) {
	cause := errors.New("connection refused")
	err := DatabaseError("get post", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
	if err.Message != "Server error" || err.Code != CodeDatabaseError {
		t.Fatalf("got %q / %s", err.Message, err.Code)
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("status = %d", err.HTTPStatus())
	}
	if got := GetHTTPStatus(fmt.Errorf("load post: %w", err)); got != http.StatusInternalServerError {
		t.Fatalf("GetHTTPStatus = %d", got)
	}
	if want := "[DATABASE_ERROR] Server error: get post: connection refused"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
