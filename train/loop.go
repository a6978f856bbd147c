// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train drives a full training run of the tutorial XOR
// classifier: it generates the instance stream, feeds every instance
// through forward and backward passes, applies SGD updates, and reports
// progress.
//
// The loop is single-threaded and synchronous. The context passed to Run
// is only a stop signal: cancellation is checked between instances.
package train

import (
	"context"
	"fmt"
	"log"

	"github.com/huaxinyuan/dynet"
	"github.com/huaxinyuan/dynet/dataset"
	"github.com/huaxinyuan/dynet/internal/metrics"
)

// Prediction is the trained network's output for one input combination.
type Prediction struct {
	Input [2]float64
	Want  float64
	Got   float64
}

// Result summarizes a completed training run.
type Result struct {
	Seen        int     // instances processed
	AvgLoss     float64 // mean loss over the whole run
	FirstLoss   float64 // loss of the first instance, before any update
	LastLoss    float64 // loss of the final instance
	Predictions []Prediction
}

// Run executes a training run and evaluates the result on the four input
// combinations.
//
// The loop follows the tutorial pattern instance by instance: bind the
// input pair and its label, run the backward pass (which performs the
// forward computation), read the loss, and apply one SGD step. Progress
// is logged every cfg.LogEvery instances.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	coll := dynet.NewCollection(dynet.WithSeed(cfg.Seed))
	net, err := newNetwork(coll, cfg.Hidden)
	if err != nil {
		return nil, err
	}

	g := dynet.NewGraph(coll)
	defer g.Close()

	wires, err := net.build(g)
	if err != nil {
		return nil, err
	}

	questions, answers := dataset.XOR(cfg.Rounds)
	sgd := dynet.NewSGDTrainer(cfg.LearnRate)

	var window metrics.Window
	res := &Result{}
	total := 0.0

	for i := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := wires.x.Set(questions[i][0], questions[i][1]); err != nil {
			return nil, fmt.Errorf("train: instance %d: %w", i, err)
		}
		if err := wires.y.Set(answers[i]); err != nil {
			return nil, fmt.Errorf("train: instance %d: %w", i, err)
		}

		if err := g.Backward(wires.loss); err != nil {
			return nil, fmt.Errorf("train: instance %d: %w", i, err)
		}
		lossVal, err := wires.loss.Value()
		if err != nil {
			return nil, fmt.Errorf("train: instance %d: %w", i, err)
		}

		if i == 0 {
			res.FirstLoss = lossVal
		}
		res.LastLoss = lossVal
		total += lossVal
		window.Record(lossVal)

		if window.Seen()%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			log.Printf("seen=%d avg_loss=%.4f", snap.Seen, snap.AvgLoss)
		}

		if err := sgd.Update(g); err != nil {
			return nil, fmt.Errorf("train: instance %d: %w", i, err)
		}
	}

	res.Seen = len(questions)
	if res.Seen > 0 {
		res.AvgLoss = total / float64(res.Seen)
	}

	preds, err := evaluate(g, wires)
	if err != nil {
		return nil, err
	}
	res.Predictions = preds

	return res, nil
}

// evaluate runs the trained network over the full two-bit input space.
func evaluate(g *dynet.Graph, wires *wiring) ([]Prediction, error) {
	questions, answers := dataset.XOR(1)
	preds := make([]Prediction, 0, len(questions))

	for i := range questions {
		if err := wires.x.Set(questions[i][0], questions[i][1]); err != nil {
			return nil, fmt.Errorf("train: evaluate %v: %w", questions[i], err)
		}
		if err := wires.y.Set(answers[i]); err != nil {
			return nil, fmt.Errorf("train: evaluate %v: %w", questions[i], err)
		}
		got, err := g.Forward(wires.pred)
		if err != nil {
			return nil, fmt.Errorf("train: evaluate %v: %w", questions[i], err)
		}
		preds = append(preds, Prediction{Input: questions[i], Want: answers[i], Got: got})
	}
	return preds, nil
}
