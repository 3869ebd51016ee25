// Package pipelines holds the built-in demo workflows the CLI can run.
// Each entry assembles its graph programmatically from registered node
// types.
package pipelines

import (
	"sort"

	"github.com/neuroflow/neurorun-cli/core"
	_ "github.com/neuroflow/neurorun-cli/nodes"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

var ErrUnknownPipeline = errors.New("unknown pipeline")

// BuildFunc assembles a ready-to-run workflow.
type BuildFunc func() (*core.Workflow, error)

var registry = map[string]BuildFunc{
	"scale-chain":   buildScaleChain,
	"spike-stats":   buildSpikeStats,
	"nest-baseline": buildNestBaseline,
	"tvb-baseline":  buildTvbBaseline,
}

// Names returns the registered pipeline names in sorted order.
func Names() []string {
	names := maps.Keys(registry)
	sort.Strings(names)
	return names
}

func Build(name string) (*core.Workflow, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownPipeline, name)
	}
	return fn()
}

func newNamedNode(nodeType, name string) (*core.Node, error) {
	n, err := core.NewNodeInstance(nodeType)
	if err != nil {
		return nil, err
	}
	n.SetName(name)
	return n, nil
}

// buildScaleChain doubles a constant and records the result:
// const(5) -> scale(x2) -> record.
func buildScaleChain() (*core.Workflow, error) {
	b := core.NewWorkflowBuilder("scale-chain")

	source, err := newNamedNode("neuro/const@v1", "source")
	if err != nil {
		return nil, err
	}
	err = source.Configure(map[string]any{"value": 5.0})
	if err != nil {
		return nil, err
	}

	double, err := newNamedNode("neuro/scale@v1", "double")
	if err != nil {
		return nil, err
	}
	err = double.Configure(map[string]any{"factor": 2.0})
	if err != nil {
		return nil, err
	}

	sink, err := newNamedNode("neuro/record@v1", "sink")
	if err != nil {
		return nil, err
	}

	for _, n := range []*core.Node{source, double, sink} {
		if err := b.AddNode(n); err != nil {
			return nil, err
		}
	}

	if err := b.Connect("source", "out", "double", "x"); err != nil {
		return nil, err
	}
	if err := b.Connect("double", "y", "sink", "value"); err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// buildSpikeStats summarizes a fixed list of spike rates:
// const([...]) -> stats -> record.
func buildSpikeStats() (*core.Workflow, error) {
	b := core.NewWorkflowBuilder("spike-stats")

	rates, err := newNamedNode("neuro/const@v1", "rates")
	if err != nil {
		return nil, err
	}
	err = rates.Configure(map[string]any{
		"value": []any{12.5, 8.0, 15.25, 9.75, 11.0},
	})
	if err != nil {
		return nil, err
	}

	summary, err := newNamedNode("neuro/stats@v1", "summary")
	if err != nil {
		return nil, err
	}

	sink, err := newNamedNode("neuro/record@v1", "sink")
	if err != nil {
		return nil, err
	}

	for _, n := range []*core.Node{rates, summary, sink} {
		if err := b.AddNode(n); err != nil {
			return nil, err
		}
	}

	if err := b.Connect("rates", "out", "summary", "values"); err != nil {
		return nil, err
	}
	if err := b.Connect("summary", "summary", "sink", "value"); err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// buildNestBaseline merges run overrides into the default NEST
// parameter set and records it.
func buildNestBaseline() (*core.Workflow, error) {
	b := core.NewWorkflowBuilder("nest-baseline")

	overrides, err := newNamedNode("neuro/const@v1", "overrides")
	if err != nil {
		return nil, err
	}
	err = overrides.Configure(map[string]any{
		"value": map[string]any{"sim_time": 2000.0},
	})
	if err != nil {
		return nil, err
	}

	params, err := newNamedNode("neuro/nest-params@v1", "params")
	if err != nil {
		return nil, err
	}

	sink, err := newNamedNode("neuro/record@v1", "sink")
	if err != nil {
		return nil, err
	}

	for _, n := range []*core.Node{overrides, params, sink} {
		if err := b.AddNode(n); err != nil {
			return nil, err
		}
	}

	if err := b.Connect("overrides", "out", "params", "overrides"); err != nil {
		return nil, err
	}
	if err := b.Connect("params", "params", "sink", "value"); err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// buildTvbBaseline records the default TVB parameter set.
func buildTvbBaseline() (*core.Workflow, error) {
	b := core.NewWorkflowBuilder("tvb-baseline")

	params, err := newNamedNode("neuro/tvb-params@v1", "params")
	if err != nil {
		return nil, err
	}

	sink, err := newNamedNode("neuro/record@v1", "sink")
	if err != nil {
		return nil, err
	}

	for _, n := range []*core.Node{params, sink} {
		if err := b.AddNode(n); err != nil {
			return nil, err
		}
	}

	if err := b.Connect("params", "params", "sink", "value"); err != nil {
		return nil, err
	}

	return b.Build(), nil
}
