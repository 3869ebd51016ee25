package core

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v4"
)

// Constraints narrows the values a parameter accepts. Min/Max apply to
// numeric parameters, MinLength/MaxLength to strings.
type Constraints struct {
	Min           *float64 `yaml:"min,omitempty"`
	Max           *float64 `yaml:"max,omitempty"`
	AllowedValues []any    `yaml:"allowed_values,omitempty"`
	MinLength     *int     `yaml:"min_length,omitempty"`
	MaxLength     *int     `yaml:"max_length,omitempty"`
}

func (c Constraints) IsZero() bool {
	return c.Min == nil && c.Max == nil && len(c.AllowedValues) == 0 &&
		c.MinLength == nil && c.MaxLength == nil
}

type ParameterDefinition struct {
	Default any         `yaml:"default"`
	Desc    string      `yaml:"desc,omitempty"`
	Constr  Constraints `yaml:"constraints,omitempty"`

	Optimizable       bool      `yaml:"optimizable,omitempty"`
	OptimizationRange []float64 `yaml:"optimization_range,omitempty"`
}

type PortDefinition struct {
	Type     PortType `yaml:"type"`
	Desc     string   `yaml:"desc,omitempty"`
	Optional bool     `yaml:"optional,omitempty"`
}

type MethodDefinition struct {
	Desc    string   `yaml:"desc,omitempty"`
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
}

// NodeDefinition is the static declaration of a node type. It is parsed
// once at registration and never mutated afterwards.
type NodeDefinition struct {
	Id        string `yaml:"id"`
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	ShortDesc string `yaml:"short_desc,omitempty"`
	Category  string `yaml:"category,omitempty"`

	Parameters map[string]ParameterDefinition `yaml:"parameters"`
	Inputs     map[string]PortDefinition      `yaml:"inputs"`
	Outputs    map[string]PortDefinition      `yaml:"outputs"`
	Methods    map[string]MethodDefinition    `yaml:"methods"`
}

func (n *NodeDefinition) TypeId() string {
	return fmt.Sprintf("%v@v%v", n.Id, n.Version)
}

func (n *NodeDefinition) IsValid() error {
	if n.Id == "" {
		return CreateErr(nil, "id is missing")
	} else if n.Name == "" {
		return CreateErr(nil, "name is missing in %v", n.Id)
	} else if n.Version == "" {
		return CreateErr(nil, "version is missing in %v", n.Id)
	} else if n.Name[0] != strings.ToUpper(n.Name)[0] {
		return CreateErr(nil, "name must start with an upper case letter in %v", n.Id)
	}

	if _, err := semver.NewVersion(n.Version); err != nil {
		return CreateErr(err, "version '%v' of '%v' is not a valid version", n.Version, n.Id)
	}
	return nil
}

func PortDefValidation(portId string, portDef PortDefinition) error {
	if portId == "" {
		return CreateErr(nil, "port id is missing")
	}
	if strings.ContainsAny(portId, " \t") {
		return CreateErr(nil, "port '%v' must not contain whitespace", portId)
	}
	if !IsValidPortType(portDef.Type) {
		return CreateErr(nil, "port '%v' has unknown type '%v'", portId, portDef.Type)
	}
	return nil
}

func paramDefValidation(paramId string, paramDef ParameterDefinition) error {
	if paramId == "" {
		return CreateErr(nil, "parameter id is missing")
	}

	if paramDef.Optimizable {
		if len(paramDef.OptimizationRange) != 2 {
			return CreateErr(nil, "optimizable parameter '%v' needs an optimization_range of [low, high]", paramId)
		}
		if paramDef.OptimizationRange[0] > paramDef.OptimizationRange[1] {
			return CreateErr(nil, "optimization_range of '%v' is inverted", paramId)
		}
	}

	c := paramDef.Constr
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return CreateErr(nil, "constraints of '%v' have min > max", paramId)
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return CreateErr(nil, "constraints of '%v' have min_length > max_length", paramId)
	}

	// A default that breaks its own constraints would make every fresh
	// node instance invalid.
	if paramDef.Default != nil {
		err := validateParameterValue(paramId, paramDef, paramDef.Default)
		if err != nil {
			return CreateErr(err, "default value of '%v' violates its own constraints", paramId)
		}
	}
	return nil
}

func methodDefValidation(def *NodeDefinition, methodId string, methodDef MethodDefinition) error {
	if methodId == "" {
		return CreateErr(nil, "method id is missing")
	}

	// every output name produced by any method of the type
	producible := make(map[string]struct{})
	for _, m := range def.Methods {
		for _, out := range m.Outputs {
			producible[out] = struct{}{}
		}
	}

	// A method input must resolve either to an input port or to a value
	// another method places into the node context.
	for _, in := range methodDef.Inputs {
		if _, ok := def.Inputs[in]; ok {
			continue
		}
		if _, ok := producible[in]; ok {
			continue
		}
		return CreateErr(nil, "method '%v' reads '%v' which is neither an input port nor produced by any method", methodId, in)
	}

	if len(methodDef.Outputs) == 0 {
		return CreateErr(nil, "method '%v' declares no outputs", methodId)
	}
	return nil
}

// nodeFactoryFunc finishes a freshly constructed node instance, most
// importantly by registering its process steps.
type nodeFactoryFunc func(n *Node) error

type nodeTypeEntry struct {
	Def     NodeDefinition
	Factory nodeFactoryFunc
}

var registries = make(map[string]nodeTypeEntry)

func GetRegistries() map[string]NodeDefinition {
	defs := make(map[string]NodeDefinition, len(registries))
	for id, entry := range registries {
		defs[id] = entry.Def
	}
	return defs
}

func GetNodeDefinition(nodeType string) (NodeDefinition, bool) {
	entry, ok := registries[nodeType]
	return entry.Def, ok
}

// RegisterNodeFactory parses a YAML node type declaration, validates it,
// and registers it together with its factory. All schema checks happen
// here, once per type, not per node construction or per call.
func RegisterNodeFactory(nodeDefStr string, fn nodeFactoryFunc) error {
	var nodeDef NodeDefinition
	err := yaml.Unmarshal([]byte(nodeDefStr), &nodeDef)
	if err != nil {
		return err
	}

	if strings.Contains(nodeDef.Id, "_") {
		return CreateErr(nil, "id '%v' must not contain underscores", nodeDef.Id)
	}

	err = nodeDef.IsValid()
	if err != nil {
		return err
	}

	for inputId, inputDef := range nodeDef.Inputs {
		err = PortDefValidation(inputId, inputDef)
		if err != nil {
			return CreateErr(err, "input '%v' of '%v' is invalid", inputId, nodeDef.Id)
		}
	}

	for outputId, outputDef := range nodeDef.Outputs {
		err = PortDefValidation(outputId, outputDef)
		if err != nil {
			return CreateErr(err, "output '%v' of '%v' is invalid", outputId, nodeDef.Id)
		}
	}

	for paramId, paramDef := range nodeDef.Parameters {
		if _, clash := nodeDef.Inputs[paramId]; clash {
			return CreateErr(nil, "'%v' of '%v' is declared both as parameter and input", paramId, nodeDef.Id)
		}
		err = paramDefValidation(paramId, paramDef)
		if err != nil {
			return CreateErr(err, "parameter '%v' of '%v' is invalid", paramId, nodeDef.Id)
		}
	}

	for methodId, methodDef := range nodeDef.Methods {
		err = methodDefValidation(&nodeDef, methodId, methodDef)
		if err != nil {
			return CreateErr(err, "method '%v' of '%v' is invalid", methodId, nodeDef.Id)
		}
	}

	id := nodeDef.TypeId()
	_, ok := registries[id]
	if ok {
		return CreateErr(nil, "node definition '%v' already registered", id)
	}

	registries[id] = nodeTypeEntry{Def: nodeDef, Factory: fn}
	return nil
}

// NewNodeInstance constructs a node of the given registered type:
// parameters seeded from schema defaults, ports instantiated from the
// port definitions, and steps attached by the type's factory.
func NewNodeInstance(nodeType string) (*Node, error) {
	entry, exists := registries[nodeType]
	if !exists {
		return nil, CreateErr(nil, "unknown node type '%v'", nodeType)
	}

	node := newNode(nodeType, entry.Def)

	if entry.Factory != nil {
		err := entry.Factory(node)
		if err != nil {
			return nil, CreateErr(err, "factory for '%v' failed", nodeType)
		}
	}

	return node, nil
}
