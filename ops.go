// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dynet

import (
	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
)

// Must returns e, panicking if err is non-nil. It exists for graph
// construction code where a shape mismatch is a programming error:
//
//	h := dynet.Must(dynet.Tanh(dynet.Must(dynet.Mul(w, x))))
func Must(e *Expr, err error) *Expr {
	if err != nil {
		panic(err)
	}
	return e
}

// Mul multiplies two expressions: matrix×vector, matrix×matrix, or the
// inner product of two vectors, following the shapes of the operands.
func Mul(a, b *Expr) (*Expr, error) {
	g, err := sameGraph(a, b)
	if err != nil {
		return nil, err
	}
	n, err := gorgonia.Mul(a.n, b.n)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: mul")
	}
	return g.newResult(n), nil
}

// Add adds two expressions elementwise.
func Add(a, b *Expr) (*Expr, error) {
	g, err := sameGraph(a, b)
	if err != nil {
		return nil, err
	}
	n, err := gorgonia.Add(a.n, b.n)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: add")
	}
	return g.newResult(n), nil
}

// Tanh applies the hyperbolic tangent elementwise.
func Tanh(a *Expr) (*Expr, error) {
	n, err := gorgonia.Tanh(a.n)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: tanh")
	}
	return a.g.newResult(n), nil
}

// Sigmoid applies the logistic function elementwise.
func Sigmoid(a *Expr) (*Expr, error) {
	n, err := gorgonia.Sigmoid(a.n)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: sigmoid")
	}
	return a.g.newResult(n), nil
}

// BinaryLogLoss computes the binary cross-entropy between a predicted
// probability and a 0/1 target:
//
//	-(y·log(p) + (1-y)·log(1-p))
//
// pred and target must have the same vector shape; the result is the
// scalar mean over their components, so it can serve directly as a cost
// for Graph.Backward. pred is expected to lie in (0, 1), e.g. the output
// of Sigmoid.
func BinaryLogLoss(pred, target *Expr) (*Expr, error) {
	g, err := sameGraph(pred, target)
	if err != nil {
		return nil, err
	}
	shape := pred.n.Shape()
	if len(shape) != 1 {
		return nil, errors.Errorf("dynet: binary log loss: want a vector prediction, got shape %v", shape)
	}

	one := gorgonia.NewVector(g.g, gorgonia.Float64,
		gorgonia.WithShape(shape[0]),
		gorgonia.WithName(g.nextName("ones")),
		gorgonia.WithInit(gorgonia.Ones()),
	)

	logP, err := gorgonia.Log(pred.n)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: log(p)")
	}
	oneMinusP, err := gorgonia.Sub(one, pred.n)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: 1-p")
	}
	logQ, err := gorgonia.Log(oneMinusP)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: log(1-p)")
	}
	oneMinusY, err := gorgonia.Sub(one, target.n)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: 1-y")
	}
	posTerm, err := gorgonia.HadamardProd(target.n, logP)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: y·log(p)")
	}
	negTerm, err := gorgonia.HadamardProd(oneMinusY, logQ)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: (1-y)·log(1-p)")
	}
	sum, err := gorgonia.Add(posTerm, negTerm)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: sum")
	}
	neg, err := gorgonia.Neg(sum)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: negate")
	}
	mean, err := gorgonia.Mean(neg)
	if err != nil {
		return nil, errors.Wrap(err, "dynet: binary log loss: mean")
	}
	return g.newResult(mean), nil
}

func sameGraph(a, b *Expr) (*Graph, error) {
	if a.g != b.g {
		return nil, errors.New("dynet: expressions belong to different graphs")
	}
	return a.g, nil
}
