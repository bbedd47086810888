// Command spaces runs the bundled constraint models from the command line.
//
//	spaces list
//	spaces solve send-more-money
//	spaces solve n-queens --all --stats
//	spaces solve maximize-sum
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gospaces/pkg/spaces"
)

var (
	flagAll     bool
	flagLimit   int
	flagStats   bool
	flagVerbose bool
)

func main() {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)

	root := &cobra.Command{
		Use:   "spaces",
		Short: "Finite-domain constraint solving over computation spaces",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the bundled models",
		Run: func(cmd *cobra.Command, args []string) {
			bold := color.New(color.Bold)
			for _, p := range spaces.Problems() {
				bold.Printf("%-16s", p.Name)
				fmt.Printf(" %s\n", p.Description)
			}
		},
	}

	solveCmd := &cobra.Command{
		Use:   "solve <model>",
		Short: "Solve a bundled model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, ok := spaces.ProblemByName(args[0])
			if !ok {
				return fmt.Errorf("unknown model %q, try 'spaces list'", args[0])
			}
			return runProblem(log, problem)
		},
	}
	solveCmd.Flags().BoolVar(&flagAll, "all", false, "enumerate every solution")
	solveCmd.Flags().IntVar(&flagLimit, "limit", 0, "stop after this many solutions (0 = one solution, or no limit with --all)")
	solveCmd.Flags().BoolVar(&flagStats, "stats", false, "print search statistics")

	root.AddCommand(listCmd, solveCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProblem(log *logrus.Logger, problem spaces.Problem) error {
	sp, err := problem.Build()
	if err != nil {
		return fmt.Errorf("building %s: %w", problem.Name, err)
	}

	if problem.Maximize != "" {
		return runMaximize(log, problem, sp)
	}

	log.WithField("model", problem.Name).Info("starting depth-first search")
	limit := flagLimit
	if !flagAll && limit == 0 {
		limit = 1
	}
	state := &spaces.State{Space: sp, Log: log}
	found := 0
	for {
		spaces.DepthFirst(state)
		if state.Status != spaces.StatusSolved {
			break
		}
		found++
		printSolution(found, state.Space.Solution())
		if limit > 0 && found >= limit {
			break
		}
		if !state.More {
			break
		}
	}

	if found == 0 {
		color.Red("no solution")
	}
	if flagStats {
		fmt.Print(state.Stats.String())
	}
	return nil
}

func runMaximize(log *logrus.Logger, problem spaces.Problem, sp *spaces.Space) error {
	log.WithFields(logrus.Fields{
		"model":    problem.Name,
		"maximize": problem.Maximize,
	}).Info("starting branch-and-bound search")

	state := &spaces.State{Space: sp, Log: log}
	spaces.BranchAndBound(state, spaces.MaximizeOrdering(problem.Maximize))
	if state.Status != spaces.StatusSolved {
		color.Red("no solution")
		return nil
	}

	printSolution(1, state.Space.Solution())
	if flagStats {
		fmt.Print(state.Stats.String())
	}
	return nil
}

func printSolution(n int, sol spaces.Solution) {
	names := make([]string, 0, len(sol))
	for name := range sol {
		names = append(names, name)
	}
	sort.Strings(names)

	green := color.New(color.FgGreen)
	green.Printf("solution %d:", n)
	for _, name := range names {
		fmt.Printf(" %s=%s", name, sol[name])
	}
	fmt.Println()
}
