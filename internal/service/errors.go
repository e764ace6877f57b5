package service

import (
	"errors"
	"fmt"
)

// 错误类别，处理层据此映射 HTTP 状态码
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage error")
	ErrExternalService = errors.New("external service error")
)

// kindError 带类别与文案键的业务错误
type kindError struct {
	kind error
	key  string
	msg  string
	args []interface{}
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// Key 返回 i18n 文案键
func (e *kindError) Key() string {
	return e.key
}

// Args 返回文案格式化参数
func (e *kindError) Args() []interface{} {
	return e.args
}

func newKindError(kind error, key, msg string) *kindError {
	return &kindError{kind: kind, key: key, msg: msg}
}

// 业务错误
var (
	ErrMissingFields           = newKindError(ErrValidation, "error.missing_fields", "name, address and cellphone are required")
	ErrInvalidQuantity         = newKindError(ErrValidation, "error.invalid_qty", "quantity must be at least 1")
	ErrTotalMismatch           = newKindError(ErrValidation, "error.total_mismatch", "grand total does not match quantity")
	ErrCodeRequired            = newKindError(ErrValidation, "error.code_required", "unique code is required")
	ErrProofRequired           = newKindError(ErrValidation, "error.proof_required", "proof of transfer is required")
	ErrProofTypeNotAllowed     = newKindError(ErrValidation, "error.proof_type", "proof of transfer type not allowed")
	ErrCaptchaInvalid          = newKindError(ErrValidation, "error.captcha_invalid", "captcha invalid")
	ErrEmailRequired           = newKindError(ErrValidation, "error.email_required", "email and password are required")
	ErrEmailExists             = newKindError(ErrValidation, "error.email_exists", "email already registered")
	ErrWeakPassword            = newKindError(ErrValidation, "error.weak_password", "password too weak")
	ErrCannotDeleteSelf        = newKindError(ErrValidation, "error.self_delete", "cannot delete own account")
	ErrSetupDone               = newKindError(ErrValidation, "error.setup_done", "admin account already exists")
	ErrInvalidTemplate         = newKindError(ErrValidation, "error.template_invalid", "certificate template must be png or jpeg")
	ErrInvalidPrice            = newKindError(ErrValidation, "error.price_invalid", "voucher price must be positive")
	ErrDonationNotFound        = newKindError(ErrNotFound, "error.donation_missing", "donation not found")
	ErrAdminNotFound           = newKindError(ErrNotFound, "error.admin_missing", "admin not found")
	ErrInvalidCredentials      = newKindError(ErrUnauthorized, "error.login_failed", "invalid credentials")
	ErrInvalidStateTransition  = newKindError(ErrConflict, "error.invalid_state", "invalid state transition")
	ErrCodeGenerationExhausted = newKindError(ErrStorage, "error.code_exhausted", "unique code generation exhausted")
)

// proofTooLargeError 凭证超出大小上限
type proofTooLargeError struct {
	limitMB int64
}

func (e proofTooLargeError) Error() string {
	return fmt.Sprintf("proof of transfer exceeds %d MB", e.limitMB)
}

func (e proofTooLargeError) Is(target error) bool {
	return target == ErrValidation || target == ErrProofTooLarge
}

func (e proofTooLargeError) Key() string {
	return "error.proof_too_large"
}

func (e proofTooLargeError) Args() []interface{} {
	return []interface{}{e.limitMB}
}

// ErrProofTooLarge 供 errors.Is 判断
var ErrProofTooLarge = errors.New("proof of transfer too large")

// storageError 存储层失败，保留原始错误
type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *storageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *storageError) Unwrap() error {
	return e.err
}

func (e *storageError) Key() string {
	return "error.storage"
}

func (e *storageError) Args() []interface{} {
	return nil
}

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storageError{op: op, err: err}
}

// externalError 外部服务失败
type externalError struct {
	op  string
	err error
}

func (e *externalError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *externalError) Is(target error) bool {
	return target == ErrExternalService
}

func (e *externalError) Unwrap() error {
	return e.err
}

func (e *externalError) Key() string {
	return "error.external"
}

func (e *externalError) Args() []interface{} {
	return nil
}

func wrapExternal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &externalError{op: op, err: err}
}
