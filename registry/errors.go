package registry

import "fmt"

// Error codes attached to FunctionError for categorization.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
	CodePanic      = "PANIC"
)

// UnknownFunctionError reports a directive naming a function that was
// never registered.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("registry: unknown function %q", e.Name)
}

// FunctionError reports a failed resolution of a registered function.
type FunctionError struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *FunctionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("function error [%s] in %s: %s", e.Code, e.Name, e.Message)
	}
	return fmt.Sprintf("function error in %s: %s", e.Name, e.Message)
}
