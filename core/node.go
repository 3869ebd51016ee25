package core

import (
	"fmt"
	"slices"
	"sort"

	"github.com/neuroflow/neurorun-cli/utils"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// OptimizableParameter records the metadata an external optimization
// loop needs to sweep a parameter.
type OptimizableParameter struct {
	Name   string
	Range  []float64
	Constr Constraints
}

// Node is the unit of computation: it owns parameters, ports, and an
// ordered pipeline of process steps. Instances are created through
// NewNodeInstance from a registered node type.
type Node struct {
	name    string
	desc    string
	typeId  string
	cacheId string

	def NodeDefinition

	params      map[string]any
	optimizable map[string]OptimizableParameter

	inputs  map[string]*InputPort
	outputs map[string]*OutputPort

	steps []ProcessStep
}

func newNode(typeId string, def NodeDefinition) *Node {
	n := &Node{
		name:        def.Name,
		desc:        def.ShortDesc,
		typeId:      typeId,
		cacheId:     fmt.Sprintf("%s:%s", typeId, uuid.New().String()),
		def:         def,
		params:      make(map[string]any),
		optimizable: make(map[string]OptimizableParameter),
		inputs:      make(map[string]*InputPort),
		outputs:     make(map[string]*OutputPort),
	}

	for paramId, paramDef := range def.Parameters {
		n.params[paramId] = paramDef.Default
		if paramDef.Optimizable {
			n.optimizable[paramId] = OptimizableParameter{
				Name:   paramId,
				Range:  slices.Clone(paramDef.OptimizationRange),
				Constr: paramDef.Constr,
			}
		}
	}

	for inputId, inputDef := range def.Inputs {
		n.inputs[inputId] = NewInputPort(inputId, inputDef)
	}
	for outputId, outputDef := range def.Outputs {
		n.outputs[outputId] = NewOutputPort(outputId, outputDef)
	}

	return n
}

func (n *Node) GetName() string {
	return n.name
}

// SetName renames the node instance. Names must be unique within a
// workflow, which the builder enforces on AddNode.
func (n *Node) SetName(name string) *Node {
	n.name = name
	return n
}

func (n *Node) GetNodeTypeId() string {
	return n.typeId
}

func (n *Node) GetCacheId() string {
	return n.cacheId
}

func (n *Node) Definition() NodeDefinition {
	return n.def
}

// AddStep appends a process step to the node's pipeline. The declared
// input and output names are checked against the schema here, at
// registration time, so Process never has to re-validate them.
func (n *Node) AddStep(step ProcessStep) error {
	if step.Fn == nil {
		return CreateErr(nil, "step '%s' of '%s' has no callable", step.Name, n.typeId)
	}

	// names a step may read: input ports plus outputs of earlier steps
	readable := make(map[string]struct{}, len(n.def.Inputs))
	for inputId := range n.def.Inputs {
		readable[inputId] = struct{}{}
	}
	for _, prev := range n.steps {
		for _, out := range prev.Outputs {
			readable[out] = struct{}{}
		}
	}

	for _, in := range step.Inputs {
		if _, ok := readable[in]; !ok {
			return CreateErr(nil, "step '%s' of '%s' reads '%s' which no input port or earlier step provides", step.Name, n.typeId, in)
		}
	}

	if step.Method != "" {
		methodDef, ok := n.def.Methods[step.Method]
		if !ok {
			return CreateErr(nil, "step '%s' of '%s' references unknown method '%s'", step.Name, n.typeId, step.Method)
		}
		if !slices.Equal(step.Inputs, methodDef.Inputs) || !slices.Equal(step.Outputs, methodDef.Outputs) {
			return CreateErr(nil, "step '%s' of '%s' does not match the declared method '%s'", step.Name, n.typeId, step.Method)
		}
	}

	n.steps = append(n.steps, step)
	return nil
}

func (n *Node) Steps() []ProcessStep {
	return slices.Clone(n.steps)
}

// Configure overwrites parameters after validating each value against
// the schema constraints. Pairs are applied one at a time in sorted key
// order; when a later pair fails, earlier pairs stay applied.
func (n *Node) Configure(params map[string]any) error {
	keys := maps.Keys(params)
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]

		paramDef, exists := n.def.Parameters[key]
		if !exists {
			return CreateErr(&SchemaViolationError{
				Node:      n.name,
				Parameter: key,
				Reason:    "no such parameter",
			}, "failed to configure '%s'", n.name)
		}

		err := validateParameterValue(key, paramDef, value)
		if err != nil {
			return CreateErr(&SchemaViolationError{
				Node:      n.name,
				Parameter: key,
				Reason:    err.Error(),
			}, "failed to configure '%s'", n.name)
		}

		n.params[key] = value
	}
	return nil
}

func (n *Node) Parameter(name string) (any, bool) {
	v, ok := n.params[name]
	return v, ok
}

func (n *Node) Parameters() map[string]any {
	return maps.Clone(n.params)
}

func (n *Node) OptimizableParameters() map[string]OptimizableParameter {
	return maps.Clone(n.optimizable)
}

func (n *Node) GetInputPort(name string) (*InputPort, error) {
	port, ok := n.inputs[name]
	if !ok {
		return nil, CreateErr(&PortResolutionError{Node: n.name, Port: name}, "no input port '%s' on '%s'", name, n.name)
	}
	return port, nil
}

func (n *Node) GetOutputPort(name string) (*OutputPort, error) {
	port, ok := n.outputs[name]
	if !ok {
		return nil, CreateErr(&PortResolutionError{Node: n.name, Port: name}, "no output port '%s' on '%s'", name, n.name)
	}
	return port, nil
}

func (n *Node) InputPorts() map[string]*InputPort {
	return maps.Clone(n.inputs)
}

func (n *Node) OutputPorts() map[string]*OutputPort {
	return maps.Clone(n.outputs)
}

// SetInput stores a local value on an input port. A connected upstream
// output takes precedence over it when the value is pulled.
func (n *Node) SetInput(name string, value any) error {
	port, err := n.GetInputPort(name)
	if err != nil {
		return err
	}
	port.SetValue(value)
	return nil
}

func (n *Node) GetOutput(name string) (any, error) {
	port, err := n.GetOutputPort(name)
	if err != nil {
		return nil, err
	}
	return port.RawValue(), nil
}

// ConnectTo wires this node's output port to an input port of another
// node, performing endpoint resolution and the type compatibility check.
// The builder's Connect goes through the same binding.
func (n *Node) ConnectTo(outPort string, other *Node, inPort string) error {
	out, err := n.GetOutputPort(outPort)
	if err != nil {
		return err
	}

	in, err := other.GetInputPort(inPort)
	if err != nil {
		return err
	}

	if !out.IsCompatibleWith(in) {
		return CreateErr(&TypeIncompatibilityError{
			FromNode: n.name,
			FromPort: outPort,
			ToNode:   other.name,
			ToPort:   inPort,
			FromType: out.Type,
			ToType:   in.Type,
		}, "failed to connect '%s.%s' to '%s.%s'", n.name, outPort, other.name, inPort)
	}

	out.attach(in)
	return nil
}

// Process runs the node's step pipeline once. A fresh context is seeded
// from the input ports' pulled values, each step consumes its declared
// slice of that context and merges its outputs back, and after all
// steps succeed every output port propagates to its connected inputs.
//
// Step errors never escape: they are logged and turn into 'false'.
// Outputs written by earlier steps of the same call stay written.
func (n *Node) Process() bool {
	ctx := make(map[string]any, len(n.inputs))
	for name, in := range n.inputs {
		if in.HasValue() {
			ctx[name] = in.Value()
		}
	}

	for _, step := range n.steps {
		sub := make(map[string]any, len(step.Inputs))
		for _, inputName := range step.Inputs {
			if v, ok := ctx[inputName]; ok {
				sub[inputName] = v
			}
		}

		ret, err := step.Fn(sub)
		if err != nil {
			utils.LogErr.Errorf("step '%s' of node '%s' failed: %v\n", step.Name, n.name, err)
			return false
		}

		var outValues map[string]any
		switch m := ret.(type) {
		case map[string]any:
			outValues = m
		case nil:
			outValues = nil
		default:
			// a bare return value maps onto a single declared output
			if len(step.Outputs) == 1 {
				outValues = map[string]any{step.Outputs[0]: ret}
			} else {
				utils.LogOut.Warnf("step '%s' of node '%s' returned a single value but declares %d outputs\n", step.Name, n.name, len(step.Outputs))
			}
		}

		for key, value := range outValues {
			ctx[key] = value
		}

		for _, outputName := range step.Outputs {
			value, ok := outValues[outputName]
			if !ok {
				utils.LogOut.Warnf("step '%s' of node '%s' did not produce declared output '%s'\n", step.Name, n.name, outputName)
				continue
			}
			if port, exists := n.outputs[outputName]; exists {
				port.SetValue(value)
			}
		}
	}

	for _, out := range n.outputs {
		out.Propagate()
	}
	return true
}

// Validate reports whether every required input port has either an
// upstream connection or a manually set local value.
func (n *Node) Validate() bool {
	for name, in := range n.inputs {
		if in.Optional {
			continue
		}
		if !in.HasValue() {
			utils.LogOut.Warnf("required input '%s' of node '%s' has no connection and no value\n", name, n.name)
			return false
		}
	}
	return true
}

type PortInfo struct {
	Name      string   `json:"name"`
	Type      PortType `json:"type"`
	Desc      string   `json:"desc,omitempty"`
	Optional  bool     `json:"optional,omitempty"`
	Connected bool     `json:"connected"`
}

type NodeInfo struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Desc        string         `json:"desc,omitempty"`
	Parameters  map[string]any `json:"parameters"`
	Optimizable []string       `json:"optimizable,omitempty"`
	Inputs      []PortInfo     `json:"inputs"`
	Outputs     []PortInfo     `json:"outputs"`
	Steps       []string       `json:"steps"`
}

func (n *Node) GetInfo() NodeInfo {
	info := NodeInfo{
		Name:       n.name,
		Type:       n.typeId,
		Desc:       n.desc,
		Parameters: maps.Clone(n.params),
	}

	for _, name := range sortedKeys(n.optimizable) {
		info.Optimizable = append(info.Optimizable, name)
	}
	for _, name := range sortedKeys(n.inputs) {
		in := n.inputs[name]
		info.Inputs = append(info.Inputs, PortInfo{
			Name:      name,
			Type:      in.Type,
			Desc:      in.Desc,
			Optional:  in.Optional,
			Connected: in.Connected(),
		})
	}
	for _, name := range sortedKeys(n.outputs) {
		out := n.outputs[name]
		info.Outputs = append(info.Outputs, PortInfo{
			Name:      name,
			Type:      out.Type,
			Desc:      out.Desc,
			Connected: len(out.targets) > 0,
		})
	}
	for _, step := range n.steps {
		info.Steps = append(info.Steps, step.Name)
	}
	return info
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}
