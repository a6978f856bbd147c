// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dynet_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huaxinyuan/dynet"
)

// TestGraph_ForwardAffine evaluates tanh(W·x + b) against values computed
// by hand.
func TestGraph_ForwardAffine(t *testing.T) {
	coll := dynet.NewCollection()
	w, err := coll.AddParameters("W", 1, 2)
	require.NoError(t, err)
	b, err := coll.AddParameters("b", 1)
	require.NoError(t, err)
	require.NoError(t, w.SetValue(2, -1))
	require.NoError(t, b.SetValue(0.5))

	g := dynet.NewGraph(coll)
	defer g.Close()

	x, err := g.Input("x", 2)
	require.NoError(t, err)

	affine := dynet.Must(dynet.Add(dynet.Must(dynet.Mul(g.Param(w), x)), g.Param(b)))
	act := dynet.Must(dynet.Tanh(affine))

	require.NoError(t, x.Set(1, 1))

	got, err := g.Forward(affine)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-9) // 2*1 + (-1)*1 + 0.5

	gotAct, err := act.Value()
	require.NoError(t, err)
	assert.InDelta(t, math.Tanh(1.5), gotAct, 1e-9)
}

// TestGraph_ForwardRebind verifies that rebinding an input and forwarding
// again reflects the new values rather than a cached result.
func TestGraph_ForwardRebind(t *testing.T) {
	coll := dynet.NewCollection()
	w, err := coll.AddParameters("W", 1, 2)
	require.NoError(t, err)
	require.NoError(t, w.SetValue(1, 1))

	g := dynet.NewGraph(coll)
	defer g.Close()

	x, err := g.Input("x", 2)
	require.NoError(t, err)
	sum := dynet.Must(dynet.Mul(g.Param(w), x))

	require.NoError(t, x.Set(1, 0))
	got, err := g.Forward(sum)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)

	require.NoError(t, x.Set(1, 1))
	got, err = g.Forward(sum)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)

	// Value without rebinding returns the already computed result.
	cached, err := sum.Value()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, cached, 1e-9)
}

// TestGraph_BinaryLogLossValue checks the loss of a sigmoid output at a
// known operating point: sigmoid(0) = 0.5, so the loss against target 1
// is -ln(0.5).
func TestGraph_BinaryLogLossValue(t *testing.T) {
	coll := dynet.NewCollection()
	z, err := coll.AddParameters("z", 1)
	require.NoError(t, err)
	require.NoError(t, z.SetValue(0))

	g := dynet.NewGraph(coll)
	defer g.Close()

	y, err := g.Input("y", 1)
	require.NoError(t, err)
	pred := dynet.Must(dynet.Sigmoid(g.Param(z)))
	loss := dynet.Must(dynet.BinaryLogLoss(pred, y))

	require.NoError(t, y.Set(1))

	got, err := g.Forward(loss)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2), got, 1e-9)
}

// TestGraph_BackwardAndUpdate runs the full chain: forward, backward,
// SGD step, and checks the analytic gradient.
//
// For loss = -[y·ln(p) + (1-y)·ln(1-p)] with p = sigmoid(z), the gradient
// is dloss/dz = p - y. With z = 0 and y = 1 that is -0.5, so a step with
// learning rate 0.1 moves z to 0.05.
func TestGraph_BackwardAndUpdate(t *testing.T) {
	coll := dynet.NewCollection()
	z, err := coll.AddParameters("z", 1)
	require.NoError(t, err)
	require.NoError(t, z.SetValue(0))

	g := dynet.NewGraph(coll)
	defer g.Close()

	y, err := g.Input("y", 1)
	require.NoError(t, err)
	pred := dynet.Must(dynet.Sigmoid(g.Param(z)))
	loss := dynet.Must(dynet.BinaryLogLoss(pred, y))

	require.NoError(t, y.Set(1))
	require.NoError(t, g.Backward(loss))

	// Backward includes the forward pass.
	lv, err := loss.Value()
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2), lv, 1e-9)

	sgd := dynet.NewSGDTrainer(0.1)
	require.NoError(t, sgd.Update(g))

	got := z.Value().Data().([]float64)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.05, got[0], 1e-9)

	// The next forward pass sees the updated parameter.
	pv, err := g.Forward(pred)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/(1.0+math.Exp(-0.05)), pv, 1e-9)
}

// TestGraph_ForwardInteriorAfterBackward reads an expression that is an
// interior node of the loss graph after gradients have been compiled.
// The engine's tape machine reuses registers for interior results, so
// the value must come from the latched read, not the node itself.
func TestGraph_ForwardInteriorAfterBackward(t *testing.T) {
	coll := dynet.NewCollection()
	w, err := coll.AddParameters("W", 1, 2)
	require.NoError(t, err)
	b, err := coll.AddParameters("b", 1)
	require.NoError(t, err)
	require.NoError(t, w.SetValue(0, 0))
	require.NoError(t, b.SetValue(0))

	g := dynet.NewGraph(coll)
	defer g.Close()

	x, err := g.Input("x", 2)
	require.NoError(t, err)
	y, err := g.Input("y", 1)
	require.NoError(t, err)

	affine := dynet.Must(dynet.Add(dynet.Must(dynet.Mul(g.Param(w), x)), g.Param(b)))
	pred := dynet.Must(dynet.Sigmoid(affine))
	loss := dynet.Must(dynet.BinaryLogLoss(pred, y))

	require.NoError(t, x.Set(0, 1))
	require.NoError(t, y.Set(1))
	require.NoError(t, g.Backward(loss))

	// With all-zero parameters, affine is exactly 0 and pred exactly 0.5.
	gotAffine, err := affine.Value()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gotAffine, 1e-12)

	gotPred, err := g.Forward(pred)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, gotPred, 1e-12)

	// A further round trip keeps interior reads consistent.
	sgd := dynet.NewSGDTrainer(0.1)
	require.NoError(t, sgd.Update(g))
	require.NoError(t, g.Backward(loss))

	gotPred, err = g.Forward(pred)
	require.NoError(t, err)
	assert.Greater(t, gotPred, 0.5, "one sgd step toward target 1")
	assert.Less(t, gotPred, 1.0)
}

// TestGraph_UsageErrors covers the misuse paths.
func TestGraph_UsageErrors(t *testing.T) {
	coll := dynet.NewCollection()
	z, err := coll.AddParameters("z", 1)
	require.NoError(t, err)

	g := dynet.NewGraph(coll)
	defer g.Close()

	_, err = g.Input("x", 0)
	assert.Error(t, err, "non-positive input size")

	x, err := g.Input("x", 2)
	require.NoError(t, err)
	_, err = g.Input("x", 2)
	assert.Error(t, err, "duplicate input name")

	assert.Error(t, x.Set(1), "arity mismatch on Set")

	// Expressions cannot cross graphs.
	other := dynet.NewGraph(nil)
	defer other.Close()
	yOther, err := other.Input("y", 1)
	require.NoError(t, err)

	_, err = g.Forward(yOther)
	assert.Error(t, err, "forward on foreign expression")

	pred := dynet.Must(dynet.Sigmoid(g.Param(z)))
	_, err = dynet.BinaryLogLoss(pred, yOther)
	assert.Error(t, err, "cross-graph operands")

	// Update before any backward pass.
	sgd := dynet.NewSGDTrainer(0.1)
	assert.Error(t, sgd.Update(g))
}
