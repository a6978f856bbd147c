// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dynet

import (
	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
)

// DefaultLearningRate is the step size used when NewSGDTrainer is given
// a non-positive learning rate. Matches DyNet's SimpleSGDTrainer default.
const DefaultLearningRate = 0.1

// SGDTrainer applies plain stochastic gradient descent updates to the
// parameters of a graph, delegating the step itself to gorgonia's
// vanilla solver.
type SGDTrainer struct {
	lr     float64
	solver gorgonia.Solver
}

// NewSGDTrainer creates an SGD trainer with the given learning rate.
// A non-positive rate falls back to DefaultLearningRate.
func NewSGDTrainer(lr float64) *SGDTrainer {
	if lr <= 0 {
		lr = DefaultLearningRate
	}
	return &SGDTrainer{
		lr:     lr,
		solver: gorgonia.NewVanillaSolver(gorgonia.WithLearnRate(lr)),
	}
}

// LearningRate returns the trainer's step size.
func (t *SGDTrainer) LearningRate() float64 { return t.lr }

// Update applies one gradient descent step to every parameter expression
// of the graph, using the gradients of the most recent backward pass.
// The update mutates the parameter tensors in place, so it persists on
// the owning Collection.
//
// Calling Update on a graph that has never run a backward pass is an
// error.
func (t *SGDTrainer) Update(g *Graph) error {
	if g == nil {
		return errors.New("dynet: update on nil graph")
	}
	if g.lossNode == nil {
		return errors.New("dynet: update before any backward pass")
	}
	if err := t.solver.Step(gorgonia.NodesToValueGrads(g.paramNodes)); err != nil {
		return errors.Wrap(err, "dynet: sgd update")
	}
	g.markStale()
	return nil
}
