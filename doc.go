// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dynet is a small, DyNet-flavored training API on top of
// gorgonia.
//
// The package does not implement any numeric machinery of its own:
// expression evaluation, automatic differentiation and parameter updates
// are all performed by gorgonia.org/gorgonia. What the package adds is a
// compact surface for the define-bind-run style of the DyNet tutorials,
// with one deliberate departure: there is no process-wide "current"
// computation graph. A Graph is an explicit value created from a
// Collection and disposed of with Close, so the caller owns the lifetime
// of every graph it builds.
//
// The moving parts:
//
//   - Collection: owns the trainable parameter tensors of a model. The
//     tensors outlive any graph, so a model can be trained through one
//     graph and later rebuilt on a fresh one.
//   - Graph: a computation graph under construction. Parameter and Input
//     create leaf expressions; Mul, Add, Tanh, Sigmoid and BinaryLogLoss
//     combine them.
//   - Expr: a node of the graph. Input expressions are bound to concrete
//     values with Set; any expression can be evaluated with
//     Graph.Forward (recomputes) or Expr.Value (last computed value).
//   - SGDTrainer: applies stochastic gradient descent steps to the
//     parameters of a graph after Graph.Backward has run.
//
// A minimal round trip:
//
//	coll := dynet.NewCollection(dynet.WithSeed(1))
//	w, _ := coll.AddParameters("w", 1, 2)
//
//	g := dynet.NewGraph(coll)
//	defer g.Close()
//
//	x, _ := g.Input("x", 2)
//	y, _ := g.Input("y", 1)
//	pred := dynet.Must(dynet.Sigmoid(dynet.Must(dynet.Mul(g.Param(w), x))))
//	loss := dynet.Must(dynet.BinaryLogLoss(pred, y))
//
//	sgd := dynet.NewSGDTrainer(0.1)
//	x.Set(1, 0)
//	y.Set(1)
//	if err := g.Backward(loss); err != nil {
//		// handle
//	}
//	_ = sgd.Update(g)
package dynet
