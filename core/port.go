package core

import "slices"

// Port is a named, typed value slot on a node.
type Port struct {
	Name string
	Type PortType
	Desc string

	value  any
	hasVal bool
}

func (p *Port) SetValue(v any) {
	p.value = v
	p.hasVal = true
}

func (p *Port) RawValue() any {
	return p.value
}

func (p *Port) HasLocalValue() bool {
	return p.hasVal
}

func (p *Port) clearValue() {
	p.value = nil
	p.hasVal = false
}

// InputPort holds at most one upstream connection. The source reference
// is a lookup relation; the output port on the other side owns the
// fan-out bookkeeping.
type InputPort struct {
	Port
	Optional bool

	source *OutputPort
}

func NewInputPort(name string, def PortDefinition) *InputPort {
	return &InputPort{
		Port: Port{
			Name: name,
			Type: def.Type,
			Desc: def.Desc,
		},
		Optional: def.Optional,
	}
}

func (p *InputPort) Connected() bool {
	return p.source != nil
}

func (p *InputPort) Source() *OutputPort {
	return p.source
}

// Value pulls the connected upstream output's current value, falling
// back to the locally set value when the port is unconnected.
func (p *InputPort) Value() any {
	if p.source != nil {
		return p.source.value
	}
	return p.value
}

// HasValue reports whether Value would return anything meaningful:
// either an upstream connection exists or a local value was set.
func (p *InputPort) HasValue() bool {
	return p.source != nil || p.hasVal
}

// OutputPort fans out to any number of downstream input ports.
type OutputPort struct {
	Port

	targets []*InputPort
}

func NewOutputPort(name string, def PortDefinition) *OutputPort {
	return &OutputPort{
		Port: Port{
			Name: name,
			Type: def.Type,
			Desc: def.Desc,
		},
	}
}

func (p *OutputPort) Targets() []*InputPort {
	return slices.Clone(p.targets)
}

func (p *OutputPort) IsCompatibleWith(in *InputPort) bool {
	return PortsAreCompatible(p.Type, in.Type)
}

// Propagate pushes the output's current value into every connected
// input port's local value. This is the push half of the value flow;
// InputPort.Value is the pull half.
func (p *OutputPort) Propagate() {
	for _, target := range p.targets {
		target.Port.SetValue(p.value)
	}
}

// attach binds 'in' as a downstream target. An input port holds at most
// one upstream connection, so a previous binding is detached first.
func (p *OutputPort) attach(in *InputPort) {
	if in.source == p {
		return
	}
	if in.source != nil {
		in.source.detach(in)
	}
	p.targets = append(p.targets, in)
	in.source = p
}

func (p *OutputPort) detach(in *InputPort) {
	p.targets = slices.DeleteFunc(p.targets, func(t *InputPort) bool {
		return t == in
	})
	if in.source == p {
		in.source = nil
	}
}

func (p *OutputPort) clearTargets() {
	for _, target := range p.targets {
		if target.source == p {
			target.source = nil
		}
	}
	p.targets = nil
}
