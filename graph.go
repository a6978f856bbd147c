// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dynet

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Graph is a computation graph under construction.
//
// Unlike the DyNet "current graph" singleton, a Graph is an explicit
// value: the caller creates it from a Collection, builds expressions on
// it, and disposes of it with Close. All evaluation state (the compiled
// program and the values of the last run) lives on the Graph.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	coll *Collection
	g    *gorgonia.ExprGraph

	paramExprs map[*Parameter]*Expr
	paramNodes gorgonia.Nodes
	inputs     map[string]*Expr

	vm       gorgonia.VM
	lossNode *gorgonia.Node
	fresh    bool
	nameSeq  int
}

// Expr is an expression in a computation graph.
//
// For operation results, read latches the computed value during a run:
// the tape machine reuses registers, so an interior node's own value may
// be overwritten by the time the caller asks for it. Leaves (parameters
// and inputs) keep their bound values and need no latch.
type Expr struct {
	g    *Graph
	n    *gorgonia.Node
	read *gorgonia.Value
}

// NewGraph creates an empty computation graph over the collection's
// parameters. A nil collection is replaced with a fresh empty one.
func NewGraph(c *Collection) *Graph {
	if c == nil {
		c = NewCollection()
	}
	return &Graph{
		coll:       c,
		g:          gorgonia.NewGraph(),
		paramExprs: make(map[*Parameter]*Expr),
		inputs:     make(map[string]*Expr),
	}
}

// Param returns the expression for a parameter on this graph, creating it
// on first use. The expression wraps the parameter's own storage, so
// optimizer updates applied through this graph persist on the collection.
func (g *Graph) Param(p *Parameter) *Expr {
	if e, ok := g.paramExprs[p]; ok {
		return e
	}
	n := gorgonia.NodeFromAny(g.g, p.value, gorgonia.WithName(p.name))
	e := &Expr{g: g, n: n}
	g.paramExprs[p] = e
	g.paramNodes = append(g.paramNodes, n)
	return e
}

// Input creates a named input expression: a vector leaf whose concrete
// values are supplied later via Set. Input names must be unique within
// the graph.
func (g *Graph) Input(name string, size int) (*Expr, error) {
	if name == "" {
		return nil, errors.New("dynet: input name must not be empty")
	}
	if size <= 0 {
		return nil, errors.Errorf("dynet: input %q: size %d is not positive", name, size)
	}
	if _, ok := g.inputs[name]; ok {
		return nil, errors.Errorf("dynet: input %q already declared", name)
	}
	n := gorgonia.NewVector(g.g, gorgonia.Float64, gorgonia.WithShape(size), gorgonia.WithName(name))
	e := &Expr{g: g, n: n}
	g.inputs[name] = e
	return e, nil
}

// Set binds concrete values to an input expression. The value count must
// match the input's size. Results of earlier runs become stale until the
// next forward or backward pass.
func (e *Expr) Set(vals ...float64) error {
	want := e.n.Shape().TotalSize()
	if len(vals) != want {
		return errors.Errorf("dynet: input %q: want %d values, got %d", e.n.Name(), want, len(vals))
	}
	backing := append([]float64(nil), vals...)
	t := tensor.New(tensor.WithShape(e.n.Shape()...), tensor.WithBacking(backing))
	if err := gorgonia.Let(e.n, t); err != nil {
		return errors.Wrapf(err, "dynet: bind input %q", e.n.Name())
	}
	e.g.fresh = false
	return nil
}

// Value returns the expression's numeric value from the most recent run,
// executing the graph first if no run has happened since the inputs were
// last bound. Use Graph.Forward to force recomputation.
func (e *Expr) Value() (float64, error) {
	if !e.g.fresh {
		if err := e.g.run(); err != nil {
			return 0, err
		}
	}
	return e.scalar()
}

// Forward recomputes the graph and returns the expression's numeric
// value. The expression must evaluate to a scalar or a length-1 vector.
func (g *Graph) Forward(e *Expr) (float64, error) {
	if e.g != g {
		return 0, errors.New("dynet: expression belongs to a different graph")
	}
	if err := g.run(); err != nil {
		return 0, err
	}
	return e.scalar()
}

// Backward runs a backward pass, computing gradients of loss with
// respect to every parameter expression created on this graph.
//
// The first call fixes the graph's loss expression; differentiating the
// same graph against a second expression is an error. The pass also
// performs the forward computation, so loss.Value() is current after
// Backward returns.
func (g *Graph) Backward(loss *Expr) error {
	if loss.g != g {
		return errors.New("dynet: expression belongs to a different graph")
	}
	if g.lossNode == nil {
		if len(g.paramNodes) == 0 {
			return errors.New("dynet: graph has no parameter expressions to differentiate")
		}
		if _, err := gorgonia.Grad(loss.n, g.paramNodes...); err != nil {
			return errors.Wrap(err, "dynet: gradient construction")
		}
		g.lossNode = loss.n
		// Any machine compiled before gradients were requested is stale.
		g.discardVM()
	} else if g.lossNode != loss.n {
		return errors.New("dynet: graph is already differentiated against a different expression")
	}
	return g.run()
}

// Close releases the graph's compiled machine. The collection and its
// parameter values are unaffected.
func (g *Graph) Close() error {
	if g.vm == nil {
		return nil
	}
	err := g.vm.Close()
	g.vm = nil
	return err
}

// run compiles the graph on first use and executes one full evaluation.
func (g *Graph) run() error {
	if g.vm == nil {
		var opts []gorgonia.VMOpt
		if g.lossNode != nil {
			opts = append(opts, gorgonia.BindDualValues(g.paramNodes...))
		}
		g.vm = gorgonia.NewTapeMachine(g.g, opts...)
	}
	g.vm.Reset()
	if err := g.vm.RunAll(); err != nil {
		return errors.Wrap(err, "dynet: graph execution")
	}
	g.fresh = true
	return nil
}

func (g *Graph) discardVM() {
	if g.vm != nil {
		_ = g.vm.Close()
		g.vm = nil
	}
}

// markStale invalidates the results of the last run, e.g. after an
// optimizer step changed the parameter values.
func (g *Graph) markStale() { g.fresh = false }

// nextName generates a unique node name for internal helper nodes.
func (g *Graph) nextName(prefix string) string {
	g.nameSeq++
	return fmt.Sprintf("%s.%d", prefix, g.nameSeq)
}

// newResult wraps an operation node in an expression. A read node latches
// the computed value on every run, which makes it a root of the program
// and keeps the result out of the tape machine's reused registers. Any
// machine compiled before this node existed is stale.
func (g *Graph) newResult(n *gorgonia.Node) *Expr {
	e := &Expr{g: g, n: n, read: new(gorgonia.Value)}
	gorgonia.Read(n, e.read)
	g.discardVM()
	return e
}

// scalar extracts a float64 from an evaluated expression, preferring the
// latched value for operation results.
func (e *Expr) scalar() (float64, error) {
	v := e.n.Value()
	if e.read != nil && *e.read != nil {
		v = *e.read
	}
	if v == nil {
		return 0, errors.Errorf("dynet: expression %q has no value", e.n.Name())
	}
	switch data := v.Data().(type) {
	case float64:
		return data, nil
	case []float64:
		if len(data) != 1 {
			return 0, errors.Errorf("dynet: expression %q is not scalar (size %d)", e.n.Name(), len(data))
		}
		return data[0], nil
	default:
		return 0, errors.Errorf("dynet: expression %q has non-float64 value of type %T", e.n.Name(), data)
	}
}
