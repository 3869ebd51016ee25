package core

// StepFunc is the callable bound by a ProcessStep. It receives the
// subset of the node context named by the step's declared inputs. It may
// return a map[string]any of named outputs, or a single bare value when
// the step declares exactly one output.
type StepFunc func(in map[string]any) (any, error)

// ProcessStep binds a callable to declared input and output names.
// Method optionally cross-references a method entry of the node type's
// schema; when set, the declared names must match the schema entry.
type ProcessStep struct {
	Name    string
	Desc    string
	Fn      StepFunc
	Inputs  []string
	Outputs []string
	Method  string
}
