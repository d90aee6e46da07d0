package errors_test

import (
	"errors"
	"fmt"
	"testing"

	. "compete/pkg/errors"
)

func TestErrorCode_Message(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{Success, "Success"},
		{ConfigNotFound, "Could not find compete.toml"},
		{InvalidParams, "Invalid parameters"},
		{TemplateCompileFailed, "Template syntax error"},
		{ErrorCode(99999), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.Message(); got != tt.want {
				t.Errorf("Message() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCode_ExitCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{Success, 0},
		{InvalidParams, 2},
		{InvalidValue, 2},
		{ConfigNotFound, 3},
		{InvalidEncoding, 3},
		{ConfigParseFailed, 4},
		{TemplateRenderFailed, 4},
		{GenerateFailed, 1},
		{InternalError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.code.Message(), func(t *testing.T) {
			if got := tt.code.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	err := New(ConfigNotFound)

	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if err.Code != ConfigNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ConfigNotFound)
	}

	if err.Error() != ConfigNotFound.Message() {
		t.Errorf("Error() = %v, want %v", err.Error(), ConfigNotFound.Message())
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ConfigParseFailed, "missing field `%s`", "test-suite")

	want := "missing field `test-suite`"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("permission denied")
	wrappedErr := Wrap(originalErr, ConfigReadFailed)

	if wrappedErr.Code != ConfigReadFailed {
		t.Errorf("Code = %v, want %v", wrappedErr.Code, ConfigReadFailed)
	}

	if wrappedErr.Unwrap() != originalErr {
		t.Error("Unwrap() should return original error")
	}

	if wrappedErr.Error() != "permission denied" {
		t.Errorf("Error() = %v, want the cause only", wrappedErr.Error())
	}

	if Wrap(nil, ConfigReadFailed) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestWrapf(t *testing.T) {
	cause := Newf(InvalidValue, "unknown variant `x`")
	err := Wrapf(cause, ConfigParseFailed, "invalid value for `%s`", "test.profile")

	want := "invalid value for `test.profile`: unknown variant `x`"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	if cause.Code != InvalidValue {
		t.Error("Wrapf should leave the cause untouched")
	}
}

func TestError_WithDetail(t *testing.T) {
	err := New(ValidationFailed).
		WithDetail("field", "test-suite").
		WithDetail("reason", "missing")

	if err.Details["field"] != "test-suite" {
		t.Error("Field detail not set correctly")
	}

	if err.Details["reason"] != "missing" {
		t.Error("Reason detail not set correctly")
	}
}

func TestError_WithMessage(t *testing.T) {
	customMsg := "custom error message"
	err := New(InternalError).WithMessage(customMsg)

	if err.Error() != customMsg {
		t.Errorf("Error() = %v, want %v", err.Error(), customMsg)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "nil error",
			err:  nil,
			want: Success,
		},
		{
			name: "custom error",
			err:  New(ConfigNotFound),
			want: ConfigNotFound,
		},
		{
			name: "wrapped by fmt",
			err:  fmt.Errorf("locate: %w", New(ConfigNotFound)),
			want: ConfigNotFound,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: InternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := Wrapf(New(ConfigParseFailed), VariantResolutionFailed, "no shape matched")

	if !Is(err, VariantResolutionFailed) {
		t.Error("Is() should return true for the outer code")
	}

	if !Is(err, ConfigParseFailed) {
		t.Error("Is() should return true for a wrapped code")
	}

	if Is(err, ConfigNotFound) {
		t.Error("Is() should return false for non-matching code")
	}

	if Is(nil, ConfigNotFound) {
		t.Error("Is() should return false for nil error")
	}
}

func TestCommonErrorConstructors(t *testing.T) {
	t.Run("BadRequest", func(t *testing.T) {
		err := BadRequest("invalid input")
		if err.Code != InvalidParams {
			t.Error("BadRequest should use InvalidParams code")
		}
	})

	t.Run("NotFoundError", func(t *testing.T) {
		err := NotFoundError("bin alias `a`")
		if err.Code != NotFound {
			t.Error("NotFoundError should use NotFound code")
		}
		if err.Error() != "bin alias `a` not found" {
			t.Errorf("Error() = %v", err.Error())
		}
	})

	t.Run("Internal", func(t *testing.T) {
		err := Internal(errors.New("io error"))
		if err.Code != InternalError {
			t.Error("Internal should use InternalError code")
		}
	})

	t.Run("ValidationError", func(t *testing.T) {
		err := ValidationError("language-id", "empty")
		if err.Code != ValidationFailed {
			t.Error("ValidationError should use ValidationFailed code")
		}
		if err.Details["field"] != "language-id" {
			t.Error("Field detail not set")
		}
	})
}

func TestGetError(t *testing.T) {
	coded := NotFoundError("bin alias `a`").
		WithDetails(map[string]interface{}{"alias": "a", "manifest": "/w/Cargo.toml"})
	if got := GetError(fmt.Errorf("render: %w", coded)); got != coded {
		t.Errorf("GetError() = %v, want the wrapped *Error", got)
	}
	if coded.Details["manifest"] != "/w/Cargo.toml" {
		t.Error("WithDetails did not merge details")
	}

	plain := GetError(errors.New("boom"))
	if plain.Code != InternalError || plain.Error() != "boom" {
		t.Errorf("GetError(plain) = %v (%v)", plain, plain.Code)
	}

	if GetError(nil) != nil {
		t.Error("GetError(nil) should be nil")
	}
}

func TestError_WithMessagef(t *testing.T) {
	err := ValidationError("path", "exists").WithMessagef("`%s` already exists", "/w/compete.toml")
	if err.Error() != "`/w/compete.toml` already exists" {
		t.Errorf("Error() = %v", err.Error())
	}
	if err.Details["reason"] != "exists" {
		t.Error("WithMessagef should keep details")
	}
}
