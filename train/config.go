// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"fmt"

	"github.com/huaxinyuan/dynet"
)

// Defaults applied by Config.Validate. They mirror the walkthrough in
// examples/xor: 2000 rounds of the four XOR combinations, an 8-unit
// hidden layer, and plain SGD with step size 0.1.
const (
	DefaultRounds   = 2000
	DefaultHidden   = 8
	DefaultLogEvery = 100
)

// Config captures the knobs of a training run. The zero value is valid:
// Validate fills in the defaults.
type Config struct {
	Rounds    int     // dataset rounds; each round contributes 4 instances
	Hidden    int     // hidden layer width
	LearnRate float64 // SGD step size
	LogEvery  int     // progress line every N instances
	Seed      int64   // parameter initialization seed
}

// Validate checks the config and applies defaults for unset fields.
// Negative values are rejected rather than defaulted.
func (c *Config) Validate() error {
	if c.Rounds < 0 {
		return fmt.Errorf("train: rounds must be >= 0 (got %d)", c.Rounds)
	}
	if c.Rounds == 0 {
		c.Rounds = DefaultRounds
	}
	if c.Hidden < 0 {
		return fmt.Errorf("train: hidden must be >= 0 (got %d)", c.Hidden)
	}
	if c.Hidden == 0 {
		c.Hidden = DefaultHidden
	}
	if c.LearnRate < 0 {
		return fmt.Errorf("train: learn rate must be >= 0 (got %g)", c.LearnRate)
	}
	if c.LearnRate == 0 {
		c.LearnRate = dynet.DefaultLearningRate
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("train: log every must be >= 0 (got %d)", c.LogEvery)
	}
	if c.LogEvery == 0 {
		c.LogEvery = DefaultLogEvery
	}
	if c.Seed == 0 {
		c.Seed = dynet.DefaultSeed
	}
	return nil
}
