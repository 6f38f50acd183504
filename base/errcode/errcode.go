package errcode

import "fmt"

// Err is a business error carried through the API layer. The code is
// returned in the response body, the status drives the HTTP status
// line.
type Err struct {
	code   uint32
	msg    string
	status int
}

func NewErr(code uint32, msg string, status int) *Err {
	return &Err{code: code, msg: msg, status: status}
}

// NewCustomErr wraps an ad-hoc message under the generic custom code.
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg, 400)
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.code, e.msg)
}

func (e *Err) Code() uint32 { return e.code }

func (e *Err) Msg() string { return e.msg }

func (e *Err) HTTPStatus() int {
	if e.status == 0 {
		return 400
	}
	return e.status
}

const (
	CodeOK         uint32 = 200
	CodeCustom     uint32 = 400001
	CodeParams     uint32 = 400002
	CodeInvariant  uint32 = 400003
	CodePhase      uint32 = 400004
	CodeForbidden  uint32 = 403001
	CodeNotFound   uint32 = 404001
	CodeUnexpected uint32 = 500001
	CodeTransfer   uint32 = 502001
)

var (
	ErrInvalidParams      = NewErr(CodeParams, "invalid params", 400)
	ErrInvariantViolation = NewErr(CodeInvariant, "precondition failed", 400)
	ErrPhaseViolation     = NewErr(CodePhase, "operation not valid in current phase", 400)
	ErrAccessDenied       = NewErr(CodeForbidden, "access denied", 403)
	ErrNotFound           = NewErr(CodeNotFound, "not found", 404)
	ErrUnexpected         = NewErr(CodeUnexpected, "server error", 500)
	ErrTransferFailed     = NewErr(CodeTransfer, "value transfer failed", 502)
)
