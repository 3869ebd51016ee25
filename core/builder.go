package core

import (
	"slices"

	"golang.org/x/exp/maps"
)

// ConnectOpts tunes how the builder treats a connection that already
// exists between the same four endpoints.
type ConnectOpts struct {
	// AllowDuplicates records the connection again even when an
	// identical one exists. The port binding itself stays single.
	AllowDuplicates bool

	// Strict turns a repeated identical connection into an error
	// instead of a silent no-op.
	Strict bool
}

// WorkflowBuilder accumulates nodes and connections and produces an
// immutable Workflow snapshot. The builder stays usable after Build;
// later mutations do not affect workflows built earlier, except through
// the shared node instances.
type WorkflowBuilder struct {
	name        string
	nodes       map[string]*Node
	connections []Connection
}

func NewWorkflowBuilder(name string) *WorkflowBuilder {
	return &WorkflowBuilder{
		name:  name,
		nodes: make(map[string]*Node),
	}
}

// AddNode registers a node under its current name. Names are the graph
// identity, so duplicates are rejected.
func (b *WorkflowBuilder) AddNode(n *Node) error {
	name := n.GetName()
	if _, exists := b.nodes[name]; exists {
		return CreateErr(nil, "workflow '%s' already contains a node named '%s'", b.name, name)
	}
	b.nodes[name] = n
	return nil
}

// Connect wires an output port to an input port. Repeating an identical
// connection is a no-op, so assembly code can be written idempotently.
func (b *WorkflowBuilder) Connect(fromNode, fromPort, toNode, toPort string) error {
	return b.ConnectWith(fromNode, fromPort, toNode, toPort, ConnectOpts{})
}

// ConnectStrict is Connect with repeated identical connections treated
// as an error.
func (b *WorkflowBuilder) ConnectStrict(fromNode, fromPort, toNode, toPort string) error {
	return b.ConnectWith(fromNode, fromPort, toNode, toPort, ConnectOpts{Strict: true})
}

// ConnectForce records the connection even when an identical one
// already exists.
func (b *WorkflowBuilder) ConnectForce(fromNode, fromPort, toNode, toPort string) error {
	return b.ConnectWith(fromNode, fromPort, toNode, toPort, ConnectOpts{AllowDuplicates: true})
}

func (b *WorkflowBuilder) ConnectWith(fromNode, fromPort, toNode, toPort string, opts ConnectOpts) error {
	from, ok := b.nodes[fromNode]
	if !ok {
		return CreateErr(nil, "workflow '%s' has no node named '%s'", b.name, fromNode)
	}
	to, ok := b.nodes[toNode]
	if !ok {
		return CreateErr(nil, "workflow '%s' has no node named '%s'", b.name, toNode)
	}

	conn := Connection{
		FromNode: fromNode,
		FromPort: fromPort,
		ToNode:   toNode,
		ToPort:   toPort,
	}

	if !opts.AllowDuplicates && slices.Contains(b.connections, conn) {
		if opts.Strict {
			return CreateErr(nil, "connection '%s.%s' -> '%s.%s' already exists", fromNode, fromPort, toNode, toPort)
		}
		return nil
	}

	out, err := from.GetOutputPort(fromPort)
	if err != nil {
		return err
	}
	in, err := to.GetInputPort(toPort)
	if err != nil {
		return err
	}

	// Type mismatches are not rejected here; Workflow.Validate reports
	// them all in one pass. Node.ConnectTo is the checked variant.
	out.attach(in)

	b.connections = append(b.connections, conn)
	return nil
}

// ClearConnections drops every recorded connection and unbinds all port
// wiring on the registered nodes, so the graph can be rewired from
// scratch without rebuilding the nodes.
func (b *WorkflowBuilder) ClearConnections() {
	for _, n := range b.nodes {
		for _, out := range n.outputs {
			out.clearTargets()
		}
	}
	b.connections = nil
}

// Build snapshots the current graph into a Workflow. The maps and
// slices are copied; the node instances are shared with the builder.
func (b *WorkflowBuilder) Build() *Workflow {
	return &Workflow{
		name:        b.name,
		nodes:       maps.Clone(b.nodes),
		connections: slices.Clone(b.connections),
	}
}
