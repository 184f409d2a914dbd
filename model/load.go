package model

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/teranos/shapegen/errors"
)

// Load reads a model AST file. The AST form is the JSON/YAML document
//
//	shapes:
//	  ns#Name:
//	    type: structure
//	    members:
//	      memberName: {target: ns#Other, traits: {...}}
//	    traits:
//	      ns#trait: <metadata value>
//
// JSON input parses fine here because YAML is a superset; the yaml.v3 node
// API is used (not plain unmarshalling) so member and trait insertion order
// survives into the model, which the determinism guarantees depend on.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model %s", path)
	}
	return Parse(data)
}

// Parse builds a model from the AST document bytes.
func Parse(data []byte) (*Model, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing model document")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("model document is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("model document root must be a mapping")
	}

	var shapes []*Shape
	for i := 0; i < len(root.Content); i += 2 {
		if root.Content[i].Value != "shapes" {
			continue
		}
		shapesNode := root.Content[i+1]
		if shapesNode.Kind != yaml.MappingNode {
			return nil, errors.New("shapes must be a mapping of shape ID to definition")
		}
		for j := 0; j < len(shapesNode.Content); j += 2 {
			id, err := ParseShapeID(shapesNode.Content[j].Value)
			if err != nil {
				return nil, err
			}
			shape, err := parseShape(id, shapesNode.Content[j+1])
			if err != nil {
				return nil, errors.Wrapf(err, "shape %s", id)
			}
			shapes = append(shapes, shape)
		}
	}
	return NewModel(shapes...), nil
}

func parseShape(id ShapeID, node *yaml.Node) (*Shape, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("shape definition must be a mapping")
	}
	shape := &Shape{ID: id}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "type":
			shape.Kind = KindFromString(val.Value)
			if shape.Kind == KindUnknown {
				return nil, errors.Newf("unknown shape type %q", val.Value)
			}
		case "members":
			members, err := parseMembers(id, val)
			if err != nil {
				return nil, err
			}
			shape.Members = append(shape.Members, members...)
		case "member", "key", "value", "input", "output":
			member, err := parseMemberRef(id.WithMember(key), val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "input":
				shape.Input = member.Target
			case "output":
				shape.Output = member.Target
			default:
				shape.Members = append(shape.Members, member)
			}
		case "traits":
			traits, err := parseTraits(val)
			if err != nil {
				return nil, err
			}
			shape.Traits = traits
		case "operations":
			if val.Kind != yaml.SequenceNode {
				return nil, errors.New("operations must be a sequence")
			}
			for _, op := range val.Content {
				target, err := parseTarget(op)
				if err != nil {
					return nil, err
				}
				shape.Operations = append(shape.Operations, target)
			}
		}
	}
	// List and map members must come out in schema order regardless of
	// their order in the document
	if shape.Kind == KindMap {
		orderMapMembers(shape)
	}
	return shape, nil
}

func parseMembers(parent ShapeID, node *yaml.Node) ([]*Shape, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("members must be a mapping")
	}
	var members []*Shape
	for i := 0; i < len(node.Content); i += 2 {
		name := node.Content[i].Value
		member, err := parseMemberRef(parent.WithMember(name), node.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", name)
		}
		members = append(members, member)
	}
	return members, nil
}

func parseMemberRef(id ShapeID, node *yaml.Node) (*Shape, error) {
	member := &Shape{ID: id, Kind: KindMember}
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("member must be a mapping with a target")
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "target":
			target, err := ParseShapeID(val.Value)
			if err != nil {
				return nil, err
			}
			member.Target = target
		case "traits":
			traits, err := parseTraits(val)
			if err != nil {
				return nil, err
			}
			member.Traits = traits
		}
	}
	if member.Target.IsZero() {
		return nil, errors.Newf("member %s has no target", id)
	}
	// Enum members carry their wire value as a trait; lift it onto the
	// member so generators need not know the trait encoding
	if ev := member.Trait(TraitEnumValue); ev != nil {
		member.EnumValue = ev.Value
	}
	return member, nil
}

func parseTraits(node *yaml.Node) ([]Annotation, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("traits must be a mapping")
	}
	var traits []Annotation
	for i := 0; i < len(node.Content); i += 2 {
		id, err := ParseShapeID(node.Content[i].Value)
		if err != nil {
			return nil, err
		}
		value, err := parseValue(node.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "trait %s", id)
		}
		traits = append(traits, Annotation{ID: id, Value: value})
	}
	return traits, nil
}

func parseTarget(node *yaml.Node) (ShapeID, error) {
	if node.Kind == yaml.ScalarNode {
		return ParseShapeID(node.Value)
	}
	if node.Kind == yaml.MappingNode {
		for i := 0; i < len(node.Content); i += 2 {
			if node.Content[i].Value == "target" {
				return ParseShapeID(node.Content[i+1].Value)
			}
		}
	}
	return ShapeID{}, errors.New("expected a shape target")
}

// parseValue converts a YAML node into a metadata value, preserving
// mapping insertion order.
func parseValue(node *yaml.Node) (*Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return parseScalar(node)
	case yaml.SequenceNode:
		elems := make([]*Value, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := parseValue(c)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return ArrayValue(elems...), nil
	case yaml.MappingNode:
		entries := make([]ObjectEntry, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			key, err := parseValue(node.Content[i])
			if err != nil {
				return nil, err
			}
			val, err := parseValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			entries = append(entries, ObjectEntry{Key: key, Value: val})
		}
		return ObjectValue(entries...), nil
	}
	return nil, errors.Newf("unsupported value node kind %d", node.Kind)
}

func parseScalar(node *yaml.Node) (*Value, error) {
	switch node.Tag {
	case "!!null":
		return NullValue(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "bool %q", node.Value)
		}
		return BoolValue(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "int %q", node.Value)
		}
		return IntValue(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "float %q", node.Value)
		}
		return FloatValue(f), nil
	default:
		return StringValue(node.Value), nil
	}
}

// orderMapMembers pins map members to key-then-value order.
func orderMapMembers(shape *Shape) {
	var key, value *Shape
	for _, m := range shape.Members {
		switch m.ID.Member {
		case "key":
			key = m
		case "value":
			value = m
		}
	}
	if key != nil && value != nil {
		shape.Members = []*Shape{key, value}
	}
}
