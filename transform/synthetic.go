package transform

import (
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/model"
)

// WrapperMember is the single member name of synthetic input/output
// structures.
const WrapperMember = "syntheticMember"

// ServiceID identifies the fabricated service holding all synthetic
// operations.
var ServiceID = model.ShapeID{Namespace: model.SyntheticNamespace, Name: "SyntheticService"}

// SyntheticService wraps the model's closure in a service shape.
//
// Top-level operations attach to the service directly. Every other
// top-level aggregate is wrapped in a synthetic input/output structure pair
// and a synthetic operation referencing them. All fabricated IDs derive
// only from the wrapped shape's own name, keeping repeated runs
// byte-for-byte stable. The returned model extends the input model; the
// input is not mutated.
func SyntheticService(m *model.Model) (*model.Model, error) {
	closure, err := Closure(m)
	if err != nil {
		return nil, err
	}

	service := &model.Shape{ID: ServiceID, Kind: model.KindService}
	added := []*model.Shape{service}
	for _, shape := range closure {
		switch shape.Kind {
		case model.KindService, model.KindResource:
			logger.Logger.Debugw("skipping service-associated shape", "shape", shape.ID.String())
		case model.KindOperation:
			service.Operations = append(service.Operations, shape.ID)
		case model.KindStructure, model.KindUnion, model.KindEnum,
			model.KindIntEnum, model.KindList, model.KindMap:
			input := wrapper(shape, "Input")
			output := wrapper(shape, "Output")
			op := operation(shape, input, output)
			added = append(added, input, output, op)
			service.Operations = append(service.Operations, op.ID)
		default:
			// Simple shapes ride along inside the aggregates that use them
		}
	}
	logger.Logger.Infow("built synthetic service", "operations", len(service.Operations))
	return m.With(added...), nil
}

// wrapper builds the synthetic structure holding one top-level shape.
func wrapper(shape *model.Shape, suffix string) *model.Shape {
	id := model.ShapeID{Namespace: model.SyntheticNamespace, Name: shape.ID.Name + suffix}
	member := &model.Shape{
		ID:     id.WithMember(WrapperMember),
		Kind:   model.KindMember,
		Target: shape.ID,
	}
	return &model.Shape{ID: id, Kind: model.KindStructure, Members: []*model.Shape{member}}
}

// operation builds the synthetic operation joining a wrapper pair. A
// wrapped error shape is referenced through the operation's error list in
// addition to its input wrapper.
func operation(shape, input, output *model.Shape) *model.Shape {
	op := &model.Shape{
		ID:     model.ShapeID{Namespace: model.SyntheticNamespace, Name: shape.ID.Name + "Operation"},
		Kind:   model.KindOperation,
		Input:  input.ID,
		Output: output.ID,
	}
	if shape.HasTrait(model.TraitError) {
		op.Errors = append(op.Errors, shape.ID)
	}
	return op
}
