// Package transform computes the generation closure of a shape graph and
// wraps it in a synthetic service so the driver can treat arbitrary
// top-level types uniformly as "service -> operations -> input/output".
package transform

import (
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/model"
)

// Closure returns the minimal top-level shape set of the model, sorted by
// shape ID.
//
// Every non-member shape outside the prelude and synthetic namespaces
// starts as a candidate; a candidate reachable from another candidate's
// member/target graph is nested and removed. An empty result is an error:
// there is nothing to generate and proceeding would write an empty
// artifact.
func Closure(m *model.Model) ([]*model.Shape, error) {
	var candidates []*model.Shape
	candidateIDs := make(map[model.ShapeID]bool)
	for _, s := range m.Shapes() {
		if s.Kind == model.KindMember || s.ID.IsPrelude() || s.ID.IsSynthetic() {
			continue
		}
		candidates = append(candidates, s)
		candidateIDs[s.ID] = true
	}

	nested := make(map[model.ShapeID]bool)
	for _, candidate := range candidates {
		for id := range reachable(m, candidate) {
			if id != candidate.ID && candidateIDs[id] {
				nested[id] = true
			}
		}
	}

	out := candidates[:0]
	for _, candidate := range candidates {
		if !nested[candidate.ID] {
			out = append(out, candidate)
		}
	}
	if len(out) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyClosure, "no top-level shapes in model")
	}
	logger.Logger.Debugw("computed generation closure", "shapes", len(out))
	return out, nil
}

// reachable walks the member/target graph from a shape and returns every
// shape ID reached, the origin excluded. The visited set doubles as the
// cycle guard; dangling references are skipped here and surface later
// during symbol resolution.
func reachable(m *model.Model, from *model.Shape) map[model.ShapeID]bool {
	visited := make(map[model.ShapeID]bool)
	stack := references(from)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == from.ID || visited[id] {
			continue
		}
		visited[id] = true
		if next := m.Shape(id); next != nil {
			stack = append(stack, references(next)...)
		}
	}
	return visited
}

// references lists the shape IDs one shape points at directly.
func references(s *model.Shape) []model.ShapeID {
	var out []model.ShapeID
	for _, member := range s.Members {
		out = append(out, member.Target)
	}
	switch s.Kind {
	case model.KindMember:
		out = append(out, s.Target)
	case model.KindOperation:
		if !s.Input.IsZero() {
			out = append(out, s.Input)
		}
		if !s.Output.IsZero() {
			out = append(out, s.Output)
		}
		out = append(out, s.Errors...)
	case model.KindService:
		out = append(out, s.Operations...)
	}
	return out
}
