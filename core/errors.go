package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），可穿透 fmt.Errorf("%w") 包装
//
// 使用场景：
//   - Catalog 错误：NOT_FOUND, ALREADY_EXISTS, INVALID_STATE
//   - Vector 错误：INVALID_ARGUMENT（维度不一致）
//   - Recall 错误：NO_CANDIDATES, INVALID_STATE, INVALID_ARGUMENT
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "NO_CANDIDATES"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "vector", "recall"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 使 errors.Is 按 Module+Code 比较，便于与预定义的哨兵错误匹配。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Module == "" || e.Module == t.Module)
}

// IsDomainError 检查错误链中是否有 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// Errorf 按格式化消息创建领域错误，消息统一加上 "module: " 前缀。
func Errorf(module, code, format string, args ...any) *DomainError {
	return NewDomainError(module, code, module+": "+fmt.Sprintf(format, args...))
}

// 错误代码常量
const (
	ErrorCodeInvalidState    = "INVALID_STATE"    // 当前数据下运算无定义（空评分求均值、相似度和为 0、空 catalog）
	ErrorCodeNoCandidates    = "NO_CANDIDATES"    // 所有物品都已被用户评分
	ErrorCodeInvalidArgument = "INVALID_ARGUMENT" // 参数不合法（维度不一致、k 越界）
	ErrorCodeNotFound        = "NOT_FOUND"        // 资源不存在
	ErrorCodeAlreadyExists   = "ALREADY_EXISTS"   // 重复注册
)

// 模块名称常量
const (
	ModuleCatalog = "catalog"
	ModuleVector  = "vector"
	ModuleRecall  = "recall"
	ModuleStore   = "store"
	ModuleConfig  = "config"
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsInvalidState 检查错误是否为 INVALID_STATE
func IsInvalidState(err error) bool { return hasCode(err, ErrorCodeInvalidState) }

// IsNoCandidates 检查错误是否为 NO_CANDIDATES
func IsNoCandidates(err error) bool { return hasCode(err, ErrorCodeNoCandidates) }

// IsInvalidArgument 检查错误是否为 INVALID_ARGUMENT
func IsInvalidArgument(err error) bool { return hasCode(err, ErrorCodeInvalidArgument) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsAlreadyExists 检查错误是否为 ALREADY_EXISTS
func IsAlreadyExists(err error) bool { return hasCode(err, ErrorCodeAlreadyExists) }
