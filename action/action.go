package action

import (
	"fmt"
	"strings"
)

// Binding is a single name-value pair emitted while matching a rule.
// A name may appear more than once; the later binding wins when the
// bindings are folded into a map.
type Binding struct {
	Name  string
	Value any
}

// Action transforms the values a rule emitted and bound while matching
// into the values the rule itself emits and binds. s is the whole input,
// and start and end delimit the region the rule matched. The returned
// slices entirely replace the rule-local values. An error aborts the
// match and propagates to the caller unchanged.
type Action interface {
	Invoke(s string, start, end int, args []any, kwargs []Binding) ([]any, []Binding, error)
}

// Determine returns the value determined by a slice of emitted values:
// its first element, or nil when the slice is empty.
func Determine(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

type bind struct {
	name string
}

// Bind returns an action that binds the determined value of the emitted
// values to name and emits nothing.
func Bind(name string) Action {
	return &bind{
		name: name,
	}
}

func (a *bind) Invoke(_ string, _, _ int, args []any, kwargs []Binding) ([]any, []Binding, error) {
	return nil, append(kwargs, Binding{Name: a.name, Value: Determine(args)}), nil
}

// CallFunc is a user function wrapped by Call.
type CallFunc func(s string, start, end int, args []any, kwargs []Binding) (any, error)

type call struct {
	fn CallFunc
}

// Call returns an action that emits the single value fn returns and
// drops the local bindings.
func Call(fn CallFunc) Action {
	return &call{
		fn: fn,
	}
}

func (a *call) Invoke(s string, start, end int, args []any, kwargs []Binding) ([]any, []Binding, error) {
	v, err := a.fn(s, start, end, args, kwargs)
	if err != nil {
		return nil, nil, err
	}
	return []any{v}, nil, nil
}

type pack struct {
	fn CallFunc
}

// Pack returns an action that calls fn with the emitted values packed
// into a single slice value, emits the value fn returns, and drops the
// local bindings.
func Pack(fn CallFunc) Action {
	return &pack{
		fn: fn,
	}
}

func (a *pack) Invoke(s string, start, end int, args []any, kwargs []Binding) ([]any, []Binding, error) {
	v, err := a.fn(s, start, end, []any{args}, kwargs)
	if err != nil {
		return nil, nil, err
	}
	return []any{v}, nil, nil
}

type constant struct {
	value any
}

// Constant returns an action that emits value regardless of what the
// rule emitted.
func Constant(value any) Action {
	return &constant{
		value: value,
	}
}

func (a *constant) Invoke(_ string, _, _ int, _ []any, _ []Binding) ([]any, []Binding, error) {
	return []any{a.value}, nil, nil
}

type first struct{}

// First returns an action that emits only the first emitted value.
func First() Action {
	return &first{}
}

func (a *first) Invoke(_ string, _, _ int, args []any, _ []Binding) ([]any, []Binding, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("no value to take the first of")
	}
	return args[:1], nil, nil
}

type last struct{}

// Last returns an action that emits only the last emitted value.
func Last() Action {
	return &last{}
}

func (a *last) Invoke(_ string, _, _ int, args []any, _ []Binding) ([]any, []Binding, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("no value to take the last of")
	}
	return args[len(args)-1:], nil, nil
}

type join struct {
	fn  CallFunc
	sep string
}

// Join returns an action that joins the emitted values, which must all
// be strings, with sep, calls fn with the joined string as its only
// value, emits the value fn returns, and drops the local bindings.
func Join(fn CallFunc, sep string) Action {
	return &join{
		fn:  fn,
		sep: sep,
	}
}

func (a *join) Invoke(s string, start, end int, args []any, kwargs []Binding) ([]any, []Binding, error) {
	strs := make([]string, len(args))
	for i, arg := range args {
		str, ok := arg.(string)
		if !ok {
			return nil, nil, fmt.Errorf("cannot join a non-string value: %v", arg)
		}
		strs[i] = str
	}
	v, err := a.fn(s, start, end, []any{strings.Join(strs, a.sep)}, kwargs)
	if err != nil {
		return nil, nil, err
	}
	return []any{v}, nil, nil
}

type fail struct {
	message string
}

// Fail returns an action that always aborts the match with message.
func Fail(message string) Action {
	return &fail{
		message: message,
	}
}

func (a *fail) Invoke(_ string, _, _ int, _ []any, _ []Binding) ([]any, []Binding, error) {
	return nil, nil, fmt.Errorf("%v", a.message)
}
