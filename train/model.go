// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"fmt"

	"github.com/huaxinyuan/dynet"
)

// network holds the parameters of the tutorial classifier: a single
// hidden layer with tanh activation feeding a logistic output unit.
//
//	pred = sigmoid(V · tanh(W·x + b) + a)
type network struct {
	w *dynet.Parameter // hidden weights, (hidden, 2)
	b *dynet.Parameter // hidden bias, (hidden)
	v *dynet.Parameter // output weights, (1, hidden)
	a *dynet.Parameter // output bias, (1)
}

// wiring collects the expressions of one graph built from a network.
type wiring struct {
	x    *dynet.Expr // input pair
	y    *dynet.Expr // target label
	pred *dynet.Expr // predicted probability
	loss *dynet.Expr // binary log loss of pred against y
}

// newNetwork registers the classifier's parameters on the collection.
func newNetwork(coll *dynet.Collection, hidden int) (*network, error) {
	if hidden <= 0 {
		return nil, fmt.Errorf("train: hidden layer width must be > 0 (got %d)", hidden)
	}

	n := &network{}
	var err error
	if n.w, err = coll.AddParameters("W", hidden, 2); err != nil {
		return nil, fmt.Errorf("train: register W: %w", err)
	}
	if n.b, err = coll.AddParameters("b", hidden); err != nil {
		return nil, fmt.Errorf("train: register b: %w", err)
	}
	if n.v, err = coll.AddParameters("V", 1, hidden); err != nil {
		return nil, fmt.Errorf("train: register V: %w", err)
	}
	if n.a, err = coll.AddParameters("a", 1); err != nil {
		return nil, fmt.Errorf("train: register a: %w", err)
	}
	return n, nil
}

// build constructs the network's expressions on a graph.
func (n *network) build(g *dynet.Graph) (*wiring, error) {
	x, err := g.Input("x", 2)
	if err != nil {
		return nil, fmt.Errorf("train: declare input: %w", err)
	}
	y, err := g.Input("y", 1)
	if err != nil {
		return nil, fmt.Errorf("train: declare target: %w", err)
	}

	wx, err := dynet.Mul(g.Param(n.w), x)
	if err != nil {
		return nil, fmt.Errorf("train: W·x: %w", err)
	}
	affine, err := dynet.Add(wx, g.Param(n.b))
	if err != nil {
		return nil, fmt.Errorf("train: W·x + b: %w", err)
	}
	h, err := dynet.Tanh(affine)
	if err != nil {
		return nil, fmt.Errorf("train: hidden activation: %w", err)
	}

	vh, err := dynet.Mul(g.Param(n.v), h)
	if err != nil {
		return nil, fmt.Errorf("train: V·h: %w", err)
	}
	out, err := dynet.Add(vh, g.Param(n.a))
	if err != nil {
		return nil, fmt.Errorf("train: V·h + a: %w", err)
	}
	pred, err := dynet.Sigmoid(out)
	if err != nil {
		return nil, fmt.Errorf("train: output activation: %w", err)
	}

	loss, err := dynet.BinaryLogLoss(pred, y)
	if err != nil {
		return nil, fmt.Errorf("train: loss: %w", err)
	}

	return &wiring{x: x, y: y, pred: pred, loss: loss}, nil
}
