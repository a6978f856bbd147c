// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dynet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huaxinyuan/dynet"
)

// TestSGDTrainer_Defaults verifies the learning-rate fallback.
func TestSGDTrainer_Defaults(t *testing.T) {
	assert.Equal(t, dynet.DefaultLearningRate, dynet.NewSGDTrainer(0).LearningRate())
	assert.Equal(t, dynet.DefaultLearningRate, dynet.NewSGDTrainer(-1).LearningRate())
	assert.Equal(t, 0.5, dynet.NewSGDTrainer(0.5).LearningRate())
}

// TestSGDTrainer_RepeatedSteps applies two updates on the same instance
// and checks that the parameter keeps moving in the descent direction.
func TestSGDTrainer_RepeatedSteps(t *testing.T) {
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
	sgd := dynet.NewSGDTrainer(0.1)

	prev := 0.0
	prevLoss, err := g.Forward(loss)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, g.Backward(loss))
		require.NoError(t, sgd.Update(g))

		cur := z.Value().Data().([]float64)[0]
		assert.Greater(t, cur, prev, "step %d should increase z toward the target", i)
		prev = cur

		curLoss, err := g.Forward(loss)
		require.NoError(t, err)
		assert.Less(t, curLoss, prevLoss, "step %d should reduce the loss", i)
		prevLoss = curLoss
	}
}

// TestSGDTrainer_UpdateErrors covers nil and never-differentiated graphs.
func TestSGDTrainer_UpdateErrors(t *testing.T) {
	sgd := dynet.NewSGDTrainer(0.1)

	assert.Error(t, sgd.Update(nil))

	g := dynet.NewGraph(nil)
	defer g.Close()
	assert.Error(t, sgd.Update(g))
}
