package core

import (
	"slices"
	"sort"

	"github.com/neuroflow/neurorun-cli/utils"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// Connection is a lightweight record of one wire in a workflow graph,
// identified purely by node and port names. Two connections are equal
// iff all four endpoints match, so the builder can compare them with ==.
type Connection struct {
	FromNode string
	FromPort string
	ToNode   string
	ToPort   string
}

// Workflow is an immutable snapshot of a node graph produced by a
// WorkflowBuilder. The port bindings live on the nodes themselves; the
// connection records mirror them for validation and inspection.
type Workflow struct {
	name        string
	nodes       map[string]*Node
	connections []Connection

	order []string
}

func (w *Workflow) GetName() string {
	return w.name
}

func (w *Workflow) FindNode(name string) (*Node, bool) {
	n, ok := w.nodes[name]
	return n, ok
}

func (w *Workflow) GetNodes() map[string]*Node {
	return maps.Clone(w.nodes)
}

func (w *Workflow) Connections() []Connection {
	return slices.Clone(w.connections)
}

// ExecutionOrder returns a topological order of the node names: every
// producer comes before all of its consumers. The order is computed by
// a depth-first traversal in reverse postorder and cached. Iteration is
// sorted throughout so the result is deterministic for a given graph.
func (w *Workflow) ExecutionOrder() ([]string, error) {
	if w.order != nil {
		return slices.Clone(w.order), nil
	}

	feeds := make(map[string][]string, len(w.nodes))
	for _, conn := range w.connections {
		if !slices.Contains(feeds[conn.FromNode], conn.ToNode) {
			feeds[conn.FromNode] = append(feeds[conn.FromNode], conn.ToNode)
		}
	}
	for from := range feeds {
		sort.Strings(feeds[from])
	}

	var (
		order   []string
		onStack = make(map[string]bool, len(w.nodes))
		done    = make(map[string]bool, len(w.nodes))
	)

	var visit func(name string) error
	visit = func(name string) error {
		if done[name] {
			return nil
		}
		if onStack[name] {
			return CreateErr(&CycleError{Node: name}, "workflow '%s' is not executable", w.name)
		}

		onStack[name] = true
		for _, next := range feeds[name] {
			if err := visit(next); err != nil {
				return err
			}
		}
		onStack[name] = false
		done[name] = true

		order = append(order, name)
		return nil
	}

	for _, name := range sortedKeys(w.nodes) {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	slices.Reverse(order)
	w.order = order
	return slices.Clone(w.order), nil
}

// Validate checks the whole workflow and reports every problem it can
// find before deciding: unsatisfied required inputs, dangling connection
// endpoints, and incompatible port types are all collected rather than
// short-circuited. Cycle detection runs last since an unordered graph
// makes execution impossible either way.
func (w *Workflow) Validate() bool {
	valid := true

	for _, name := range sortedKeys(w.nodes) {
		if !w.nodes[name].Validate() {
			valid = false
		}
	}

	for _, conn := range w.connections {
		fromNode, ok := w.nodes[conn.FromNode]
		if !ok {
			utils.LogErr.Errorf("connection references unknown node '%s'\n", conn.FromNode)
			valid = false
			continue
		}
		toNode, ok := w.nodes[conn.ToNode]
		if !ok {
			utils.LogErr.Errorf("connection references unknown node '%s'\n", conn.ToNode)
			valid = false
			continue
		}

		out, err := fromNode.GetOutputPort(conn.FromPort)
		if err != nil {
			utils.LogErr.Errorf("%v\n", err)
			valid = false
			continue
		}
		in, err := toNode.GetInputPort(conn.ToPort)
		if err != nil {
			utils.LogErr.Errorf("%v\n", err)
			valid = false
			continue
		}

		if !out.IsCompatibleWith(in) {
			utils.LogErr.Errorf("%v\n", &TypeIncompatibilityError{
				FromNode: conn.FromNode,
				FromPort: conn.FromPort,
				ToNode:   conn.ToNode,
				ToPort:   conn.ToPort,
				FromType: out.Type,
				ToType:   in.Type,
			})
			valid = false
		}
	}

	if _, err := w.ExecutionOrder(); err != nil {
		utils.LogErr.Errorf("%v\n", err)
		valid = false
	}

	return valid
}

// Execute runs every node once in topological order. Execution is
// serial and fail-fast: the first node whose Process reports failure
// stops the run, and the nodes after it in the order never run.
func (w *Workflow) Execute() bool {
	order, err := w.ExecutionOrder()
	if err != nil {
		utils.LogErr.Errorf("%v\n", err)
		return false
	}

	runId := uuid.New().String()
	utils.LogOut.Debugf("executing workflow '%s' (run %s), order: %v\n", w.name, runId, order)

	for _, name := range order {
		node := w.nodes[name]
		utils.LogOut.Debugf("processing node '%s' (%s)\n", name, node.GetNodeTypeId())
		if !node.Process() {
			utils.LogErr.Errorf("workflow '%s' stopped: node '%s' failed\n", w.name, name)
			return false
		}
	}

	utils.LogOut.Debugf("workflow '%s' finished (run %s)\n", w.name, runId)
	return true
}

type WorkflowInfo struct {
	Name        string       `json:"name"`
	Nodes       []NodeInfo   `json:"nodes"`
	Connections []Connection `json:"connections"`
	Order       []string     `json:"order,omitempty"`
}

func (w *Workflow) GetInfo() WorkflowInfo {
	info := WorkflowInfo{
		Name:        w.name,
		Connections: slices.Clone(w.connections),
	}
	for _, name := range sortedKeys(w.nodes) {
		info.Nodes = append(info.Nodes, w.nodes[name].GetInfo())
	}
	// omitted when the graph has no valid order
	if order, err := w.ExecutionOrder(); err == nil {
		info.Order = order
	}
	return info
}
