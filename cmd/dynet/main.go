// Package main provides the dynet command line interface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/huaxinyuan/dynet"
	"github.com/huaxinyuan/dynet/train"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("dynet %s\n", version)
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "dynet train: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "dynet: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("dynet - DyNet-style training API on gorgonia")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train the XOR tutorial network")
	fmt.Println("  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	rounds := fs.Int("rounds", train.DefaultRounds, "Rounds of the four XOR combinations")
	hidden := fs.Int("hidden", train.DefaultHidden, "Hidden layer width")
	lr := fs.Float64("lr", dynet.DefaultLearningRate, "SGD learning rate")
	logEvery := fs.Int("log-every", train.DefaultLogEvery, "Progress line every N instances")
	seed := fs.Int64("seed", dynet.DefaultSeed, "Parameter initialization seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Ctrl-C stops the run between instances.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := train.Run(ctx, train.Config{
		Rounds:    *rounds,
		Hidden:    *hidden,
		LearnRate: *lr,
		LogEvery:  *logEvery,
		Seed:      *seed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nTrained on %d instances, average loss %.6f\n\n", res.Seen, res.AvgLoss)
	fmt.Println("Predictions:")
	for _, p := range res.Predictions {
		fmt.Printf("  %.0f XOR %.0f = %.0f  ->  %.4f\n", p.Input[0], p.Input[1], p.Want, p.Got)
	}
	return nil
}
