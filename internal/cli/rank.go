package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/surfrank/surfrank/pkg/graphio"
	"github.com/surfrank/surfrank/pkg/rank"
)

// rankOpts holds the command-line flags for the rank command.
type rankOpts struct {
	alpha   float64 // damping factor
	epsilon float64 // L1 convergence threshold
	maxIter int     // iteration cap
	history bool    // print the per-iteration convergence history
	tui     bool    // open the interactive convergence viewer
	output  string  // optional result file path
}

// rankCommand creates the rank command for computing PageRank scores.
func (c *CLI) rankCommand() *cobra.Command {
	defaults := rank.DefaultOptions()
	opts := rankOpts{
		alpha:   defaults.Alpha,
		epsilon: defaults.Epsilon,
		maxIter: defaults.MaxIter,
	}

	cmd := &cobra.Command{
		Use:   "rank [file]",
		Short: "Compute PageRank scores for a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return runRank(ctx, args[0], &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.alpha, "alpha", opts.alpha, "damping factor in (0, 1)")
	cmd.Flags().Float64Var(&opts.epsilon, "epsilon", opts.epsilon, "L1 convergence threshold")
	cmd.Flags().IntVar(&opts.maxIter, "max-iter", opts.maxIter, "maximum number of iterations")
	cmd.Flags().BoolVar(&opts.history, "history", false, "print the per-iteration convergence history")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "open the interactive convergence viewer")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result as JSON to a file")

	return cmd
}

// rankResult is the JSON shape written by --output. The field names
// match the HTTP API's /api/pagerank response.
type rankResult struct {
	Scores     map[string]float64 `json:"scores"`
	Iterations int                `json:"iterations"`
	History    []float64          `json:"convergence_history"`
	Converged  bool               `json:"converged"`
}

// runRank loads the graph from input, ranks it, and prints a score table.
func runRank(ctx context.Context, input string, opts *rankOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Ranking %s", input)

	doc, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	g, stats := graphio.ToGraph(doc)
	logger.Infof("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	if stats.DroppedEdges > 0 {
		printWarning("dropped %d edges referencing unknown labels", stats.DroppedEdges)
	}

	prog := newProgress(logger)
	res, err := rank.Compute(ctx, g, rank.Options{
		Alpha:   opts.alpha,
		Epsilon: opts.epsilon,
		MaxIter: opts.maxIter,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ranked %d nodes", g.NodeCount()))
	if !res.Converged {
		printWarning("did not converge within %d iterations (last delta %.2e)",
			res.Iterations, res.History[len(res.History)-1])
	}

	printScores(res)
	printStats(g.NodeCount(), res.Iterations, res.Converged)

	if opts.history {
		printHistory(res.History)
	}
	if opts.tui {
		if err := runHistoryViewer(res); err != nil {
			return err
		}
	}
	if opts.output != "" {
		if err := writeResult(res, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// printScores renders the scores as a table, highest first. Ties break
// by label so the output is deterministic.
func printScores(res *rank.Result) {
	labels := res.Labels()
	scores := res.ByLabel()
	sort.Slice(labels, func(i, j int) bool {
		if scores[labels[i]] != scores[labels[j]] {
			return scores[labels[i]] > scores[labels[j]]
		}
		return labels[i] < labels[j]
	})

	rows := make([][]string, len(labels))
	for i, label := range labels {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			label,
			fmt.Sprintf("%.6f", scores[label]),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Node", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}

// printHistory prints the L1 delta of each iteration.
func printHistory(history []float64) {
	printNewline()
	fmt.Println(StyleTitle.Render("Convergence"))
	for i, delta := range history {
		fmt.Printf("  %s %s\n",
			StyleDim.Render(fmt.Sprintf("iter %3d", i+1)),
			StyleNumber.Render(fmt.Sprintf("%.2e", delta)))
	}
}

// writeResult writes the ranking result as indented JSON.
func writeResult(res *rank.Result, path string) error {
	out := rankResult{
		Scores:     res.ByLabel(),
		Iterations: res.Iterations,
		History:    res.History,
		Converged:  res.Converged,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
