// Package errors 定义跨层共享的错误分类：用户输入校验、存储解码、导出失败。
package errors

import (
	"errors"
	"fmt"
)

// ValidationError 用户输入校验失败：同步提示用户，操作中止且不产生任何状态变化
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation 创建校验错误
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageDecodeError 持久化记录损坏，调用方以空默认值恢复，不向用户暴露
type StorageDecodeError struct {
	Key string
	Err error
}

func (e *StorageDecodeError) Error() string {
	return fmt.Sprintf("存储记录 %q 解码失败: %v", e.Key, e.Err)
}

func (e *StorageDecodeError) Unwrap() error { return e.Err }

// ExportError 栅格化或 PDF 生成失败，对用户仅显示通用失败提示
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("导出 %s 失败: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsValidation 是否为校验错误
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsExport 是否为导出错误
func IsExport(err error) bool {
	var e *ExportError
	return errors.As(err, &e)
}
