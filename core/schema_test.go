package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RegisterNodeFactoryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{
			"missing name",
			`
id: test/no-name
version: 1
`,
		},
		{
			"lowercase name",
			`
id: test/lower
name: lower
version: 1
`,
		},
		{
			"underscore in id",
			`
id: test/bad_id
name: BadId
version: 1
`,
		},
		{
			"invalid version",
			`
id: test/bad-version
name: BadVersion
version: not-a-version
`,
		},
		{
			"unknown port type",
			`
id: test/bad-port
name: BadPort
version: 1
inputs:
  x:
    type: tensor
`,
		},
		{
			"default violates own constraints",
			`
id: test/bad-default
name: BadDefault
version: 1
parameters:
  level:
    default: 99
    constraints:
      min: 0
      max: 10
`,
		},
		{
			"inverted optimization range",
			`
id: test/bad-range
name: BadRange
version: 1
parameters:
  gain:
    default: 1.0
    optimizable: true
    optimization_range: [5, 1]
`,
		},
		{
			"parameter and input share a name",
			`
id: test/clash
name: Clash
version: 1
parameters:
  x:
    default: 0
inputs:
  x:
    type: float
`,
		},
		{
			"method reads unknown name",
			`
id: test/bad-method
name: BadMethod
version: 1
inputs:
  x:
    type: float
methods:
  compute:
    inputs: [z]
    outputs: [y]
`,
		},
		{
			"method without outputs",
			`
id: test/silent-method
name: SilentMethod
version: 1
inputs:
  x:
    type: float
methods:
  compute:
    inputs: [x]
    outputs: []
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RegisterNodeFactory(tt.def, nil)
			assert.Error(t, err)
		})
	}
}

func Test_RegisterNodeFactoryDuplicate(t *testing.T) {
	def := `
id: test/once
name: Once
version: 1
outputs:
  out:
    type: any
`
	require.NoError(t, RegisterNodeFactory(def, nil))
	assert.Error(t, RegisterNodeFactory(def, nil))
}

func Test_NodeDefinitionTypeId(t *testing.T) {
	def := NodeDefinition{Id: "neuro/scale", Name: "Scale", Version: "1"}
	assert.Equal(t, "neuro/scale@v1", def.TypeId())
	assert.NoError(t, def.IsValid())
}

func Test_NewNodeInstanceUnknownType(t *testing.T) {
	_, err := NewNodeInstance("test/does-not-exist@v1")
	assert.Error(t, err)
}

func Test_MethodMayReadOtherMethodOutputs(t *testing.T) {
	// a method input that is not a port resolves against the outputs
	// another method of the type produces
	def := `
id: test/two-phase
name: TwoPhase
version: 1
inputs:
  raw:
    type: list
outputs:
  result:
    type: dict
methods:
  prepare:
    inputs: [raw]
    outputs: [cleaned]
  analyze:
    inputs: [cleaned]
    outputs: [result]
`
	assert.NoError(t, RegisterNodeFactory(def, nil))
}
