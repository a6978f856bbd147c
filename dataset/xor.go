// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset generates synthetic training instances for the tutorial
// networks in this repository.
//
// The instances are tiny on purpose: each one is a pair of bits and the
// label that a logic gate assigns to that pair. The generator is fully
// deterministic so that training runs (and tests) are repeatable.
package dataset

// Order of the input pairs within one round. Every round enumerates the
// full two-bit input space in this fixed order.
var pairOrder = [4][2]float64{
	{0, 0},
	{0, 1},
	{1, 0},
	{1, 1},
}

// XOR produces parallel question/answer sequences for the exclusive-or
// problem.
//
// For each of the rounds repetitions, the four two-bit combinations occur
// in the fixed order (0,0), (0,1), (1,0), (1,1), so the returned slices
// have length 4*rounds. For every index i:
//
//	answers[i] == questions[i][0] XOR questions[i][1]
//
// Bits are stored as float64 (0 or 1) so the instances can be bound to
// input expressions directly.
//
// Parameters:
//   - rounds: Number of repetitions of the four-combination enumeration.
//     Values <= 0 yield empty sequences.
//
// Returns:
//   - questions: Ordered input pairs, length 4*rounds.
//   - answers: Matching labels, length 4*rounds.
//
// The function is pure: calling it twice with the same rounds yields
// identical sequences.
func XOR(rounds int) (questions [][2]float64, answers []float64) {
	if rounds <= 0 {
		return nil, nil
	}

	n := 4 * rounds
	questions = make([][2]float64, 0, n)
	answers = make([]float64, 0, n)

	for r := 0; r < rounds; r++ {
		for _, q := range pairOrder {
			questions = append(questions, q)
			answers = append(answers, xor(q[0], q[1]))
		}
	}

	return questions, answers
}

// xor computes the exclusive-or of two bits stored as float64.
func xor(a, b float64) float64 {
	if (a != 0) != (b != 0) {
		return 1
	}
	return 0
}
