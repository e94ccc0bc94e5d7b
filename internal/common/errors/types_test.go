package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorMessageFormat(t *testing.T) {
	err := NotFoundError("plugin 42")
	if got, want := err.Error(), "not_found: plugin 42 not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := stderrors.New("disk gone")
	wrapped := InternalError("failed to get plugin", cause)
	if got := wrapped.Error(); got != "internal: failed to get plugin: cause=disk gone" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestFieldValidationErrorIsDeterministic(t *testing.T) {
	err := FieldValidationError(map[string]string{
		"name":    "name is required",
		"account": "Account is required",
	})
	want := "validation: invalid configuration: fields={account=Account is required, name=name is required}"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsType(t *testing.T) {
	if !IsType(ValidationError("bad"), ErrTypeValidation) {
		t.Error("ValidationError should match ErrTypeValidation")
	}
	if IsType(ValidationError("bad"), ErrTypeNotFound) {
		t.Error("ValidationError should not match ErrTypeNotFound")
	}
	if IsType(nil, ErrTypeValidation) {
		t.Error("nil should match nothing")
	}
	if IsType(stderrors.New("plain"), ErrTypeInternal) {
		t.Error("plain errors should match nothing")
	}
}
