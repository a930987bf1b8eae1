package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("add course: %w", NewValidation("name", "课程名称不能为空"))

	if !IsValidation(err) {
		t.Fatal("expected wrapped validation error to be detected")
	}
	var v *ValidationError
	errors.As(err, &v)
	if v.Field != "name" || v.Error() != "name: 课程名称不能为空" {
		t.Errorf("unexpected %+v / %q", v, v.Error())
	}
	if NewValidation("", "无效").Error() != "无效" {
		t.Error("field-less message should be bare")
	}
}

func TestExportAndDecodeErrorsUnwrap(t *testing.T) {
	cause := errors.New("chrome crashed")

	exp := &ExportError{Format: "pdf", Err: cause}
	if !IsExport(exp) || !errors.Is(exp, cause) {
		t.Error("export error should unwrap to its cause")
	}
	if IsValidation(exp) {
		t.Error("export error is not a validation error")
	}

	dec := &StorageDecodeError{Key: "courses", Err: cause}
	if !errors.Is(dec, cause) {
		t.Error("decode error should unwrap to its cause")
	}
}
