package contract

import "errors"

// Sentinel errors for the orchestration core. Wrap with fmt.Errorf("%w: ...")
// and test with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrClassification  = errors.New("classification error")
	ErrRenderer        = errors.New("renderer error")
	ErrAdapterTimeout  = errors.New("adapter timeout")
	ErrModelInvoke     = errors.New("model invocation error")
	ErrSchemaViolation = errors.New("schema violation")
)
