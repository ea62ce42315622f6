package codegen

import (
	"sort"

	"railsgen/internal/model"
	"railsgen/internal/naming"
)

// GroupByPath partitions operations by path. Groups come out in first-seen
// order and keep the operations in input order.
//
// Templates cannot look ahead, so the has-more flags are computed here: every
// group but the last has HasMore set, and every operation but the final one
// of the last group has HasMore set.
func GroupByPath(ops []*model.Operation) []*model.PathGroup {
	var groups []*model.PathGroup
	index := map[string]*model.PathGroup{}

	for _, op := range ops {
		g, ok := index[op.Path]
		if !ok {
			g = &model.PathGroup{Path: op.Path}
			index[op.Path] = g
			groups = append(groups, g)
		}
		g.Operations = append(g.Operations, op)
	}

	for i, g := range groups {
		g.HasMore = i < len(groups)-1
		for _, op := range g.Operations {
			op.HasMore = true
		}
	}
	if n := len(groups); n > 0 {
		last := groups[n-1].Operations
		last[len(last)-1].HasMore = false
	}

	return groups
}

// GroupByController collects operations per router-controller value. The
// controllers are sorted by name.
func (p *Processor) GroupByController(ops []*model.Operation) []*model.Controller {
	index := map[string]*model.Controller{}
	var out []*model.Controller

	for _, op := range ops {
		c, ok := index[op.Controller]
		if !ok {
			c = &model.Controller{
				Name:      op.Controller,
				ClassName: p.names.ResourceName(op.Controller),
				FileName:  naming.FileName(op.Controller),
			}
			index[op.Controller] = c
			out = append(out, c)
		}
		c.Operations = append(c.Operations, op)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
