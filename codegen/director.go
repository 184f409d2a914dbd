// Package codegen assembles a generation run: settings, the shared run
// context, and the director that turns a shape model into Rust source
// artifacts.
package codegen

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/shapegen/generators"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/transform"
	"github.com/teranos/shapegen/writer"
)

// Director drives a full generation pass: closure transform, per-artifact
// rendering, manifest writes.
type Director struct {
	ctx      *Context
	manifest FileManifest
}

// NewDirector returns a director writing artifacts to the manifest.
func NewDirector(ctx *Context, manifest FileManifest) *Director {
	return &Director{ctx: ctx, manifest: manifest}
}

// Run executes one generation pass. Artifacts render in parallel, each
// with a private writer; the first failure cancels the rest and nothing
// is written for failed artifacts.
func (d *Director) Run(ctx context.Context) error {
	transformed, err := transform.SyntheticService(d.ctx.Model)
	if err != nil {
		return err
	}

	artifacts := d.partition(serviceClosure(transformed))
	logger.Logger.Infow("generation pass",
		"artifacts", len(artifacts),
		"shapes", transformed.Len())

	gctx := d.ctx.Generators(transformed)
	g, ctx := errgroup.WithContext(ctx)
	for name, shapes := range artifacts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := d.render(gctx, name, shapes)
			if err != nil {
				return err
			}
			return d.manifest.WriteFile(name, text)
		})
	}
	return g.Wait()
}

// serviceClosure walks the synthetic service frame, service to operations
// to their inputs, outputs and errors, then transitively through members,
// and returns every reachable shape.
func serviceClosure(m *model.Model) []*model.Shape {
	visited := map[model.ShapeID]bool{}
	var out []*model.Shape
	var walk func(id model.ShapeID)
	walk = func(id model.ShapeID) {
		if visited[id] {
			return
		}
		visited[id] = true
		s := m.Shape(id)
		if s == nil {
			return
		}
		out = append(out, s)
		for _, op := range s.Operations {
			walk(op)
		}
		if s.Kind == model.KindOperation {
			walk(s.Input)
			walk(s.Output)
			for _, e := range s.Errors {
				walk(e)
			}
		}
		for _, member := range s.Members {
			walk(member.ID)
		}
		if s.Kind == model.KindMember {
			walk(s.Target)
		}
	}
	walk(transform.ServiceID)
	// The transform leaves simple shapes unwrapped; standalone ones are
	// not reachable through the frame but still carry a schema block
	for _, s := range m.Shapes() {
		if s.Kind.IsSimple() && !s.ID.IsPrelude() && !visited[s.ID] {
			walk(s.ID)
		}
	}
	return out
}

// partition groups the generatable shapes into named artifacts: one per
// namespace, or a single file when settings force one. The synthetic
// frame and prelude drop out here; they carry no declarations.
func (d *Director) partition(shapes []*model.Shape) map[string][]*model.Shape {
	artifacts := map[string][]*model.Shape{}
	for _, s := range shapes {
		if s.Kind == model.KindMember || s.ID.IsPrelude() || s.ID.IsSynthetic() {
			continue
		}
		if !d.ctx.Settings.Selects(s.ID.Namespace) {
			continue
		}
		name := d.ctx.Settings.OutputFile
		if name == "" {
			name = artifactName(s.ID.Namespace)
		}
		artifacts[name] = append(artifacts[name], s)
	}
	for _, shapes := range artifacts {
		sort.Slice(shapes, func(i, j int) bool {
			return shapes[i].ID.String() < shapes[j].ID.String()
		})
	}
	return artifacts
}

// render produces the full text of one artifact: import block, then the
// shape declarations in ID order.
func (d *Director) render(gctx generators.Context, name string, shapes []*model.Shape) (string, error) {
	w := d.ctx.NewWriter(name)
	for _, s := range shapes {
		if err := dispatch(w, gctx, s); err != nil {
			return "", err
		}
	}
	body := w.String()
	if err := w.Err(); err != nil {
		return "", err
	}
	if imports := w.Imports().String(); imports != "" {
		return imports + "\n" + body, nil
	}
	return body, nil
}

// dispatch routes one shape to its generator. Service-frame kinds carry
// no Rust declaration and are skipped.
func dispatch(w *writer.Writer, gctx generators.Context, s *model.Shape) error {
	switch {
	case s.Kind == model.KindStructure:
		return generators.Structure(w, gctx, s)
	case s.Kind == model.KindUnion:
		return generators.Union(w, gctx, s)
	case s.Kind == model.KindEnum || s.Kind == model.KindIntEnum:
		return generators.Enum(w, gctx, s)
	case s.Kind == model.KindList:
		return generators.List(w, gctx, s)
	case s.Kind == model.KindMap:
		return generators.Map(w, gctx, s)
	case s.Kind.IsSimple():
		return generators.Scalar(w, gctx, s)
	default:
		logger.Logger.Debugw("skipping shape kind", "id", s.ID, "kind", s.Kind)
		return nil
	}
}

// artifactName derives a Rust file name from a shape namespace.
func artifactName(namespace string) string {
	name := strings.NewReplacer(".", "_", "-", "_").Replace(namespace)
	return strings.ToLower(name) + ".rs"
}
