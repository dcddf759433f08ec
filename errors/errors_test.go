package errors

import (
	"fmt"
	"testing"
)

func TestHookError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeToolNotFound, "tool not found")
	if err.Code != ErrCodeToolNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeToolNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeHookFailed, "hook failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeHookFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeToolNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("hook", "black").WithDetail("exitCode", 1)
	if detailed.Details["hook"] != "black" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test ToolNotFound
	err := ToolNotFound("black", "black")
	if err.Code != ErrCodeToolNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeToolNotFound, err.Code)
	}
	if err.Details["hook"] != "black" {
		t.Error("ToolNotFound should include hook detail")
	}

	// Test FilterCompile
	err = FilterCompile("top-level", "([", fmt.Errorf("missing closing )"))
	if err.Code != ErrCodeFilterCompile {
		t.Errorf("expected code %s, got %s", ErrCodeFilterCompile, err.Code)
	}
	if err.Details["pattern"] != "([" {
		t.Error("FilterCompile should include pattern detail")
	}

	// Test SchemaValidation
	err = SchemaValidation("rev", "repos[0]")
	if err.Code != ErrCodeSchemaValidation {
		t.Errorf("expected code %s, got %s", ErrCodeSchemaValidation, err.Code)
	}
	if err.Details["field"] != "rev" {
		t.Error("SchemaValidation should include field detail")
	}
}
