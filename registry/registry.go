// Package registry implements the function calling subsystem: a mapping
// from function names to schemas and callable implementations, used by a
// Conversation to resolve model-issued function call directives into
// function_result messages.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rgbkrk/chatlab/internal/schema"
	"github.com/rgbkrk/chatlab/logging"
	"github.com/rgbkrk/chatlab/message"
	"github.com/rgbkrk/chatlab/provider"
)

// Function is a registered callable. Arguments arrive already parsed from
// the directive's JSON payload and validated against the declared schema.
// The returned value must be JSON-serializable.
type Function func(ctx context.Context, args map[string]any) (any, error)

type entry struct {
	description string
	parameters  map[string]any
	fn          Function
}

// FunctionRegistry maps function names to schemas and implementations. It
// is safe for concurrent use; entries are immutable once registered.
type FunctionRegistry struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  logging.Logger
}

// Options configure a FunctionRegistry.
type Options struct {
	Logger logging.Logger
}

// New constructs an empty FunctionRegistry.
func New(optFns ...func(o *Options)) *FunctionRegistry {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FunctionRegistry{entries: make(map[string]entry), logger: opts.Logger}
}

// Register adds a function under a unique name. The parameters map is a
// minimal JSON Schema object describing accepted arguments.
func (r *FunctionRegistry) Register(name, description string, parameters map[string]any, fn Function) error {
	if name == "" {
		return fmt.Errorf("registry: function name is empty")
	}
	if fn == nil {
		return fmt.Errorf("registry: function %q is nil", name)
	}
	if parameters == nil {
		parameters = map[string]any{"type": "object", "properties": map[string]any{}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("registry: function %q already registered", name)
	}
	r.entries[name] = entry{description: description, parameters: parameters, fn: fn}
	return nil
}

// RegisterStruct registers a function deriving its parameter schema from
// the exported fields of a struct via reflection.
func (r *FunctionRegistry) RegisterStruct(name, description string, argsType any, fn Function) error {
	return r.Register(name, description, schema.FromStruct(argsType), fn)
}

// Has reports whether a function name is registered.
func (r *FunctionRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered function names in unspecified order.
func (r *FunctionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Definitions returns the declared schemas in the shape forwarded to the
// model with every request.
func (r *FunctionRegistry) Definitions() []provider.FunctionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]provider.FunctionDefinition, 0, len(r.entries))
	for name, e := range r.entries {
		defs = append(defs, provider.FunctionDefinition{
			Name:        name,
			Description: e.description,
			Parameters:  e.parameters,
		})
	}
	return defs
}

// Resolve executes the named function with the directive's arguments and
// returns a function_result message carrying the serialized return value.
//
// Failure semantics:
//
//	unregistered name          -> *UnknownFunctionError
//	malformed / invalid args   -> *FunctionError{Code: CodeValidation}
//	callable returned an error -> *FunctionError{Code: CodeExecution}
//	callable panicked          -> *FunctionError{Code: CodePanic}
//	ctx cancelled / timed out  -> the context error, unwrapped by errors.Is
//
// Callers decide which of these stay in-band; context errors should always
// surface.
func (r *FunctionRegistry) Resolve(ctx context.Context, call message.FunctionCall) (message.Message, error) {
	r.mu.RLock()
	e, ok := r.entries[call.Name]
	r.mu.RUnlock()
	if !ok {
		return message.Message{}, &UnknownFunctionError{Name: call.Name}
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return message.Message{}, &FunctionError{
				Name:    call.Name,
				Code:    CodeValidation,
				Message: fmt.Sprintf("malformed arguments: %v", err),
			}
		}
	}
	if err := schema.Validate(args, e.parameters); err != nil {
		r.logger.Warn("function.resolve.validation_failed", "function", call.Name, "error", err.Error())
		return message.Message{}, &FunctionError{
			Name:    call.Name,
			Code:    CodeValidation,
			Message: err.Error(),
			Details: err,
		}
	}

	r.logger.Debug("function.resolve.start", "function", call.Name, "call_id", call.ID)
	start := time.Now()
	result, err := r.invoke(ctx, e.fn, args, call.Name)
	if err != nil {
		r.logger.Error("function.resolve.error", "function", call.Name, "error", err.Error())
		if ctxErr := ctx.Err(); ctxErr != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return message.Message{}, err
		}
		var fnErr *FunctionError
		if errors.As(err, &fnErr) {
			return message.Message{}, fnErr
		}
		return message.Message{}, &FunctionError{Name: call.Name, Code: CodeExecution, Message: err.Error()}
	}
	r.logger.Info("function.resolve.success", "function", call.Name, "duration_ms", time.Since(start).Milliseconds())

	return message.FunctionResult(call.Name, result).WithCallID(call.ID), nil
}

// invoke runs the callable with panic recovery so a misbehaving function
// cannot take down the submit loop.
func (r *FunctionRegistry) invoke(ctx context.Context, fn Function, args map[string]any, name string) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("function.resolve.panic", "function", name, "recover", rec)
			err = &FunctionError{
				Name:    name,
				Code:    CodePanic,
				Message: fmt.Sprintf("panic: %v", rec),
				Details: string(debug.Stack()),
			}
		}
	}()
	return fn(ctx, args)
}
