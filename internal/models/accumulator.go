package models

import "fmt"

// AccumulatorState is the lifecycle state of an Accumulator
type AccumulatorState int

const (
	AccumulatorEmpty AccumulatorState = iota
	AccumulatorAccumulating
	AccumulatorFlushed
)

// String returns the string representation of the state
func (s AccumulatorState) String() string {
	switch s {
	case AccumulatorEmpty:
		return "empty"
	case AccumulatorAccumulating:
		return "accumulating"
	case AccumulatorFlushed:
		return "flushed"
	default:
		return "unknown"
	}
}

// Accumulator builds the ContractRecord of a single package invocation.
// It moves from empty to accumulating when the subject name is first set and
// to flushed when the record is handed out. It never goes back.
type Accumulator struct {
	state  AccumulatorState
	record ContractRecord
	seen   map[string]bool
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{seen: make(map[string]bool)}
}

// State returns the current lifecycle state
func (a *Accumulator) State() AccumulatorState {
	return a.state
}

// Name returns the recorded subject name
func (a *Accumulator) Name() string {
	return a.record.Name
}

// Observe records a block subject. Only the first observed subject becomes
// the contract name; later subjects are ignored.
func (a *Accumulator) Observe(subject string) error {
	switch a.state {
	case AccumulatorEmpty:
		if subject == "" {
			return fmt.Errorf("contract subject name cannot be empty")
		}
		a.record.Name = subject
		a.record.Methods = make([]MethodRecord, 0)
		a.state = AccumulatorAccumulating
		return nil
	case AccumulatorAccumulating:
		return nil
	default:
		return fmt.Errorf("cannot observe %q: accumulator is %s", subject, a.state)
	}
}

// Append adds a method to the record in call order
func (a *Accumulator) Append(method MethodRecord) error {
	if a.state != AccumulatorAccumulating {
		return fmt.Errorf("cannot append method %q: accumulator is %s", method.Name, a.state)
	}
	if a.seen[method.Name] {
		return fmt.Errorf("method %q is already recorded", method.Name)
	}
	if method.Params == nil {
		method.Params = make([]ParamRecord, 0)
	}
	a.seen[method.Name] = true
	a.record.Methods = append(a.record.Methods, method)
	return nil
}

// Flush hands out the finished record and closes the accumulator
func (a *Accumulator) Flush() (ContractRecord, error) {
	if a.state != AccumulatorAccumulating {
		return ContractRecord{}, fmt.Errorf("cannot flush: accumulator is %s", a.state)
	}
	a.state = AccumulatorFlushed
	return a.record, nil
}
