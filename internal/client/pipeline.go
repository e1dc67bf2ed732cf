package client

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// resolver turns parsed resources into finished ones by looking up class
// definitions and list nodes through the definition caches.
type resolver struct {
	classes dsp.DefinitionCache[*dsp.ResourceClassDefinition]
	nodes   dsp.DefinitionCache[*dsp.ListNode]
}

func newResolver(classes dsp.DefinitionCache[*dsp.ResourceClassDefinition], nodes dsp.DefinitionCache[*dsp.ListNode]) *resolver {
	return &resolver{classes: classes, nodes: nodes}
}

// resolve fills class labels, property labels and list node labels of
// resources and the resources they embed. Deleted resources are left alone.
func (r *resolver) resolve(ctx context.Context, resources []*dsp.ReadResource) error {
	live := collectLive(resources)
	if len(live) == 0 {
		return nil
	}

	classIRIs := make(map[string]struct{})
	nodeIRIs := make(map[string]struct{})

	for _, res := range live {
		if res.Type != "" {
			classIRIs[res.Type] = struct{}{}
		}

		for _, values := range res.Properties {
			for _, value := range values {
				if list, ok := value.(*dsp.ReadListValue); ok && list.ListNode != "" {
					nodeIRIs[list.ListNode] = struct{}{}
				}
			}
		}
	}

	var (
		classes map[string]*dsp.ResourceClassDefinition
		nodes   map[string]*dsp.ListNode
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		classes, err = r.resolveClasses(gctx, keys(classIRIs))

		return err
	})

	g.Go(func() error {
		var err error
		nodes, err = fetchAll(gctx, keys(nodeIRIs), r.nodes.Get)

		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range live {
		assemble(res, classes, nodes)
	}

	return nil
}

// resolveClasses fetches the given classes and then their superclasses one
// level at a time until no unseen class remains.
func (r *resolver) resolveClasses(ctx context.Context, pending []string) (map[string]*dsp.ResourceClassDefinition, error) {
	resolved := make(map[string]*dsp.ResourceClassDefinition)

	for len(pending) > 0 {
		level, err := fetchAll(ctx, pending, r.classes.Get)
		if err != nil {
			return nil, err
		}

		next := make(map[string]struct{})

		for iri, def := range level {
			resolved[iri] = def
		}

		for _, def := range level {
			for _, super := range def.SubClassOf {
				if _, seen := resolved[super]; !seen {
					next[super] = struct{}{}
				}
			}
		}

		pending = keys(next)
	}

	return resolved, nil
}

// fetchAll looks up every key concurrently; the first failure cancels the rest.
func fetchAll[T any](ctx context.Context, iris []string, get func(context.Context, string) (T, error)) (map[string]T, error) {
	results := make([]T, len(iris))

	g, gctx := errgroup.WithContext(ctx)

	for i, iri := range iris {
		g.Go(func() error {
			value, err := get(gctx, iri)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", iri, err)
			}

			results[i] = value

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]T, len(iris))
	for i, iri := range iris {
		out[iri] = results[i]
	}

	return out, nil
}

// collectLive returns the non-deleted resources and everything they embed
// through link values, depth first.
func collectLive(resources []*dsp.ReadResource) []*dsp.ReadResource {
	var (
		live []*dsp.ReadResource
		walk func(res *dsp.ReadResource)
	)

	seen := make(map[*dsp.ReadResource]bool)

	walk = func(res *dsp.ReadResource) {
		if res == nil || res.IsDeleted || seen[res] {
			return
		}

		seen[res] = true
		live = append(live, res)

		for _, values := range res.Properties {
			for _, value := range values {
				if link, ok := value.(*dsp.ReadLinkValue); ok {
					walk(link.LinkedResource)
				}
			}
		}
	}

	for _, res := range resources {
		walk(res)
	}

	return live
}

// propertyLabels merges the property labels of a class and its superclasses.
// A subclass label wins over the one it inherits.
func propertyLabels(classIRI string, classes map[string]*dsp.ResourceClassDefinition) map[string]string {
	labels := make(map[string]string)
	visited := make(map[string]bool)
	queue := []string{classIRI}

	for len(queue) > 0 {
		iri := queue[0]
		queue = queue[1:]

		if visited[iri] {
			continue
		}

		visited[iri] = true

		def, ok := classes[iri]
		if !ok {
			continue
		}

		for prop, pd := range def.Properties {
			if _, set := labels[prop]; !set && pd.Label != "" {
				labels[prop] = pd.Label
			}
		}

		queue = append(queue, def.SubClassOf...)
	}

	return labels
}

func assemble(res *dsp.ReadResource, classes map[string]*dsp.ResourceClassDefinition, nodes map[string]*dsp.ListNode) {
	if def, ok := classes[res.Type]; ok && def != nil {
		res.ResourceClassLabel = def.Label
	}

	labels := propertyLabels(res.Type, classes)

	for prop, values := range res.Properties {
		label, ok := labels[prop]
		if ok {
			if res.PropertyLabels == nil {
				res.PropertyLabels = make(map[string]string)
			}

			res.PropertyLabels[prop] = label
		}

		for _, value := range values {
			value.Common().PropertyLabel = label

			if list, ok := value.(*dsp.ReadListValue); ok {
				if node, found := nodes[list.ListNode]; found && node != nil {
					list.ListNodeLabel = node.Label
				}
			}
		}
	}
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}

	sort.Strings(out)

	return out
}
