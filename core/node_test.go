package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmitterDef = `
id: test/emitter
name: Emitter
version: 1
parameters:
  value:
    default: 0.0
outputs:
  out:
    type: float
`

const testDoubleDef = `
id: test/double
name: Double
version: 1
inputs:
  x:
    type: float
outputs:
  y:
    type: float
`

const testSinkDef = `
id: test/sink
name: Sink
version: 1
inputs:
  value:
    type: any
outputs:
  recorded:
    type: any
`

const testFailDef = `
id: test/fail
name: Fail
version: 1
inputs:
  x:
    type: any
    optional: true
outputs:
  out:
    type: any
`

const testCounterDef = `
id: test/counter
name: Counter
version: 1
outputs:
  n:
    type: int
`

const testStrSinkDef = `
id: test/str-sink
name: StrSink
version: 1
inputs:
  text:
    type: string
`

const testClampedDef = `
id: test/clamped
name: Clamped
version: 1
parameters:
  level:
    default: 5.0
    constraints:
      min: 0
      max: 10
  mode:
    default: fast
    constraints:
      allowed_values: [fast, accurate]
outputs:
  out:
    type: any
`

func init() {
	mustRegister(testEmitterDef, func(n *Node) error {
		return n.AddStep(ProcessStep{
			Name:    "emit",
			Outputs: []string{"out"},
			Fn: func(in map[string]any) (any, error) {
				v, _ := n.Parameter("value")
				return v, nil
			},
		})
	})

	mustRegister(testDoubleDef, func(n *Node) error {
		return n.AddStep(ProcessStep{
			Name:    "double",
			Inputs:  []string{"x"},
			Outputs: []string{"y"},
			Fn: func(in map[string]any) (any, error) {
				x, err := ToFloat(in["x"])
				if err != nil {
					return nil, err
				}
				return x * 2, nil
			},
		})
	})

	mustRegister(testSinkDef, func(n *Node) error {
		return n.AddStep(ProcessStep{
			Name:    "record",
			Inputs:  []string{"value"},
			Outputs: []string{"recorded"},
			Fn: func(in map[string]any) (any, error) {
				return in["value"], nil
			},
		})
	})

	mustRegister(testFailDef, func(n *Node) error {
		return n.AddStep(ProcessStep{
			Name:    "explode",
			Inputs:  []string{"x"},
			Outputs: []string{"out"},
			Fn: func(in map[string]any) (any, error) {
				return nil, errors.New("boom")
			},
		})
	})

	mustRegister(testClampedDef, nil)
	mustRegister(testStrSinkDef, nil)
	mustRegister(testCounterDef, nil)
}

func mustRegister(def string, fn nodeFactoryFunc) {
	err := RegisterNodeFactory(def, fn)
	if err != nil {
		panic(err)
	}
}

func Test_NodeDefaults(t *testing.T) {
	n, err := NewNodeInstance("test/clamped@v1")
	require.NoError(t, err)

	level, ok := n.Parameter("level")
	require.True(t, ok)
	assert.Equal(t, 5.0, level)

	mode, ok := n.Parameter("mode")
	require.True(t, ok)
	assert.Equal(t, "fast", mode)
}

func Test_NodeConfigure(t *testing.T) {
	n, err := NewNodeInstance("test/clamped@v1")
	require.NoError(t, err)

	err = n.Configure(map[string]any{"level": 7.5, "mode": "accurate"})
	require.NoError(t, err)

	level, _ := n.Parameter("level")
	assert.Equal(t, 7.5, level)

	// out-of-range value is rejected, the previous value survives
	err = n.Configure(map[string]any{"level": 11.0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, &SchemaViolationError{}))

	level, _ = n.Parameter("level")
	assert.Equal(t, 7.5, level)

	// unknown parameters are a schema violation too
	err = n.Configure(map[string]any{"gain": 1.0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, &SchemaViolationError{}))

	// values outside the enumeration are rejected
	err = n.Configure(map[string]any{"mode": "sloppy"})
	require.Error(t, err)
}

func Test_NodeConfigureAppliesEarlierPairs(t *testing.T) {
	n, err := NewNodeInstance("test/clamped@v1")
	require.NoError(t, err)

	// keys are applied in sorted order; 'level' precedes 'mode', so it
	// stays applied when 'mode' fails
	err = n.Configure(map[string]any{"level": 2.0, "mode": "sloppy"})
	require.Error(t, err)

	level, _ := n.Parameter("level")
	assert.Equal(t, 2.0, level)
	mode, _ := n.Parameter("mode")
	assert.Equal(t, "fast", mode)
}

func Test_NodeProcess(t *testing.T) {
	n, err := NewNodeInstance("test/double@v1")
	require.NoError(t, err)

	require.NoError(t, n.SetInput("x", 21.0))
	require.True(t, n.Process())

	y, err := n.GetOutput("y")
	require.NoError(t, err)
	assert.Equal(t, 42.0, y)
}

func Test_NodeProcessStepFailure(t *testing.T) {
	n, err := NewNodeInstance("test/fail@v1")
	require.NoError(t, err)

	assert.False(t, n.Process())
}

func Test_NodeProcessMissingDeclaredOutput(t *testing.T) {
	n, err := NewNodeInstance("test/sink@v1")
	require.NoError(t, err)

	// second step declares two outputs but produces only one; the run
	// must finish and keep what was produced
	err = n.AddStep(ProcessStep{
		Name:    "partial",
		Inputs:  []string{"value"},
		Outputs: []string{"recorded", "checksum"},
		Fn: func(in map[string]any) (any, error) {
			return map[string]any{"recorded": in["value"]}, nil
		},
	})
	require.NoError(t, err)

	require.NoError(t, n.SetInput("value", "spikes"))
	require.True(t, n.Process())

	recorded, err := n.GetOutput("recorded")
	require.NoError(t, err)
	assert.Equal(t, "spikes", recorded)
}

func Test_NodeAddStepValidation(t *testing.T) {
	n, err := NewNodeInstance("test/sink@v1")
	require.NoError(t, err)

	// a step may not read names that no port or earlier step provides
	err = n.AddStep(ProcessStep{
		Name:    "bogus",
		Inputs:  []string{"no-such-input"},
		Outputs: []string{"recorded"},
		Fn:      func(in map[string]any) (any, error) { return nil, nil },
	})
	assert.Error(t, err)

	// but outputs of earlier steps are readable
	err = n.AddStep(ProcessStep{
		Name:    "chained",
		Inputs:  []string{"recorded"},
		Outputs: []string{"recorded"},
		Fn:      func(in map[string]any) (any, error) { return in["recorded"], nil },
	})
	assert.NoError(t, err)
}

func Test_NodePortResolution(t *testing.T) {
	n, err := NewNodeInstance("test/double@v1")
	require.NoError(t, err)

	_, err = n.GetInputPort("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &PortResolutionError{}))

	_, err = n.GetOutputPort("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &PortResolutionError{}))
}

func Test_NodeConnectIncompatible(t *testing.T) {
	emitter, err := NewNodeInstance("test/emitter@v1")
	require.NoError(t, err)

	// emitter.out is float; wire it to an input expecting a string
	strSink, err := NewNodeInstance("test/str-sink@v1")
	require.NoError(t, err)

	err = emitter.ConnectTo("out", strSink, "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &TypeIncompatibilityError{}))
}
