package ossim

import (
	"errors"
	"fmt"
	"testing"
)

func TestStructuredError(t *testing.T) {
	err := NewError("config", ErrCodeConfigInvalid, "quantum time out of range")

	if err.Op != "config" {
		t.Errorf("Expected Op=config, got %s", err.Op)
	}
	if err.Code != ErrCodeConfigInvalid {
		t.Errorf("Expected Code=ErrCodeConfigInvalid, got %s", err.Code)
	}

	expected := "ossim: quantum time out of range (op=config)"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestProcessError(t *testing.T) {
	err := NewProcessError("dispatch", 3, ErrCodeSegFault, "overlapping segment")

	if err.ProcessNum != 3 {
		t.Errorf("Expected ProcessNum=3, got %d", err.ProcessNum)
	}

	expected := "ossim: overlapping segment (op=dispatch)"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	inner := fmt.Errorf("unexpected EOF")
	err := WrapError("metadata", inner)

	if err.Code != ErrCodeBuildFailed {
		t.Errorf("Expected Code=ErrCodeBuildFailed, got %s", err.Code)
	}
	if !errors.Is(err, err) {
		t.Error("expected errors.Is to match itself")
	}
	if errors.Unwrap(err) != inner {
		t.Error("expected Unwrap to return the inner error")
	}
}

func TestWrapErrorPreservesCodeOfStructuredInner(t *testing.T) {
	inner := NewError("metadata", ErrCodeMetadataInvalid, "bad opString")
	err := WrapError("build", inner)

	if err.Code != ErrCodeMetadataInvalid {
		t.Errorf("Expected wrapped code to carry over, got %s", err.Code)
	}
	if err.Op != "build" {
		t.Errorf("Expected Op to be updated to build, got %s", err.Op)
	}
}

func TestIsCode(t *testing.T) {
	err := NewError("config", ErrCodeConfigNotFound, "open failed")

	if !IsCode(err, ErrCodeConfigNotFound) {
		t.Error("IsCode should return true for matching code")
	}
	if IsCode(err, ErrCodeMetadataInvalid) {
		t.Error("IsCode should return false for non-matching code")
	}
	if IsCode(nil, ErrCodeConfigNotFound) {
		t.Error("IsCode should return false for nil error")
	}
}
