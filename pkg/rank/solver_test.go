package rank

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/surfrank/surfrank/pkg/graph"
)

func TestComputeEmptyGraph(t *testing.T) {
	_, err := Compute(context.Background(), graph.New(), DefaultOptions())
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("Compute(empty) error = %v, want ErrEmptyGraph", err)
	}
}

func TestComputeSingleNode(t *testing.T) {
	// A single isolated node already holds all the mass: the first
	// iteration produces zero difference and a score of exactly 1.
	g := graph.New()
	g.AddNode("A")

	res, err := Compute(context.Background(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", res.Iterations)
	}
	if !res.Converged {
		t.Error("Converged = false, want true")
	}
	if res.Scores[0] != 1.0 {
		t.Errorf("score = %g, want 1.0", res.Scores[0])
	}
	if res.History[0] != 0 {
		t.Errorf("first L1 difference = %g, want 0", res.History[0])
	}
}

func TestComputeCycle(t *testing.T) {
	// A→B→C→A is symmetric: scores converge to 1/3 each, well under
	// the iteration cap.
	g := graph.New()
	for _, l := range []string{"A", "B", "C"} {
		g.AddNode(l)
	}
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")

	res, err := Compute(context.Background(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !res.Converged {
		t.Fatal("cycle did not converge")
	}
	if res.Iterations >= DefaultMaxIter/2 {
		t.Errorf("Iterations = %d, expected fast convergence", res.Iterations)
	}
	for i, s := range res.Scores {
		if math.Abs(s-1.0/3.0) > DefaultEpsilon {
			t.Errorf("score[%d] = %g, want ≈1/3", i, s)
		}
	}
}

func TestComputeStar(t *testing.T) {
	// A fans out to four dangling sinks. The stationary distribution is
	// A = 4/23 and B..E = 4.75/23 each (solve π = πG by hand for N=5,
	// alpha=0.75): the sinks end up equal and above the sole source.
	g := graph.New()
	for _, l := range []string{"A", "B", "C", "D", "E"} {
		g.AddNode(l)
	}
	for _, dst := range []string{"B", "C", "D", "E"} {
		g.AddEdge("A", dst)
	}

	res, err := Compute(context.Background(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !res.Converged {
		t.Fatal("star did not converge")
	}

	wantA := 4.0 / 23.0
	wantSink := 4.75 / 23.0
	if math.Abs(res.Scores[0]-wantA) > 1e-4 {
		t.Errorf("score(A) = %g, want ≈%g", res.Scores[0], wantA)
	}
	for i := 1; i < 5; i++ {
		if math.Abs(res.Scores[i]-wantSink) > 1e-4 {
			t.Errorf("score[%d] = %g, want ≈%g", i, res.Scores[i], wantSink)
		}
		if res.Scores[i] <= res.Scores[0] {
			t.Errorf("sink score %g not above source score %g", res.Scores[i], res.Scores[0])
		}
	}
}

func TestComputeScoresSumToOne(t *testing.T) {
	graphs := map[string]func() *graph.Graph{
		"chain": func() *graph.Graph {
			g := graph.New()
			for _, l := range []string{"A", "B", "C", "D"} {
				g.AddNode(l)
			}
			g.AddEdge("A", "B")
			g.AddEdge("B", "C")
			g.AddEdge("C", "D")
			return g
		},
		"no edges": func() *graph.Graph {
			g := graph.New()
			for _, l := range []string{"A", "B", "C"} {
				g.AddNode(l)
			}
			return g
		},
		"self loops": func() *graph.Graph {
			g := graph.New()
			g.AddNode("A")
			g.AddNode("B")
			g.AddEdge("A", "A")
			g.AddEdge("A", "B")
			g.AddEdge("B", "A")
			return g
		},
		"dense": func() *graph.Graph {
			g := graph.New()
			labels := []string{"A", "B", "C", "D", "E", "F"}
			for _, l := range labels {
				g.AddNode(l)
			}
			for _, s := range labels {
				for _, d := range labels {
					if s != d {
						g.AddEdge(s, d)
					}
				}
			}
			return g
		},
	}

	for name, build := range graphs {
		t.Run(name, func(t *testing.T) {
			res, err := Compute(context.Background(), build(), DefaultOptions())
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			sum := 0.0
			for i, s := range res.Scores {
				if s < 0 {
					t.Errorf("score[%d] = %g, negative", i, s)
				}
				sum += s
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("scores sum to %g, want 1", sum)
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	build := func() *graph.Graph {
		g := graph.New()
		for _, l := range []string{"A", "B", "C", "D"} {
			g.AddNode(l)
		}
		g.AddEdge("A", "B")
		g.AddEdge("B", "C")
		g.AddEdge("C", "A")
		g.AddEdge("C", "D")
		return g
	}

	r1, err := Compute(context.Background(), build(), DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	r2, err := Compute(context.Background(), build(), DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if r1.Iterations != r2.Iterations {
		t.Errorf("iteration counts differ: %d vs %d", r1.Iterations, r2.Iterations)
	}
	for i := range r1.Scores {
		if r1.Scores[i] != r2.Scores[i] {
			t.Errorf("score[%d] differs: %g vs %g", i, r1.Scores[i], r2.Scores[i])
		}
	}
}

func TestComputeIterationCap(t *testing.T) {
	// An epsilon no float can reach forces the cap; the last vector is
	// still returned and the caller sees Converged == false.
	g := graph.New()
	for _, l := range []string{"A", "B", "C"} {
		g.AddNode(l)
	}
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")

	opts := DefaultOptions()
	opts.Epsilon = math.SmallestNonzeroFloat64
	opts.MaxIter = 5

	res, err := Compute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Converged {
		t.Error("Converged = true, want false at iteration cap")
	}
	if res.Iterations != 5 {
		t.Errorf("Iterations = %d, want 5", res.Iterations)
	}
	if len(res.Scores) != 3 {
		t.Errorf("len(Scores) = %d, want 3", len(res.Scores))
	}
}

func TestComputeHistory(t *testing.T) {
	g := graph.New()
	for _, l := range []string{"A", "B", "C", "D"} {
		g.AddNode(l)
	}
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")
	g.AddEdge("B", "D")

	res, err := Compute(context.Background(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(res.History) != res.Iterations {
		t.Fatalf("len(History) = %d, want %d", len(res.History), res.Iterations)
	}
	last := res.History[len(res.History)-1]
	if last >= DefaultEpsilon {
		t.Errorf("final L1 difference %g not below epsilon", last)
	}
}

func TestComputeCancelled(t *testing.T) {
	g := graph.New()
	g.AddNode("A")
	g.AddNode("B")
	g.AddEdge("A", "B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Compute(ctx, g, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("Compute error = %v, want context.Canceled", err)
	}
}

func TestResultByLabel(t *testing.T) {
	g := graph.New()
	g.AddNode("home")
	g.AddNode("about")
	g.AddEdge("home", "about")

	res, err := Compute(context.Background(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	byLabel := res.ByLabel()
	if len(byLabel) != 2 {
		t.Fatalf("ByLabel has %d entries, want 2", len(byLabel))
	}
	if byLabel["home"] != res.Scores[0] || byLabel["about"] != res.Scores[1] {
		t.Error("ByLabel does not match index order")
	}

	if s, ok := res.Score("about"); !ok || s != res.Scores[1] {
		t.Errorf("Score(about) = %g, %v", s, ok)
	}
	if _, ok := res.Score("ghost"); ok {
		t.Error("Score(ghost) ok for unknown label")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(o *Options) {}, false},
		{"alpha zero", func(o *Options) { o.Alpha = 0 }, false},
		{"alpha one", func(o *Options) { o.Alpha = 1 }, false},
		{"alpha negative", func(o *Options) { o.Alpha = -0.1 }, true},
		{"alpha above one", func(o *Options) { o.Alpha = 1.1 }, true},
		{"epsilon zero", func(o *Options) { o.Epsilon = 0 }, true},
		{"epsilon negative", func(o *Options) { o.Epsilon = -1e-6 }, true},
		{"max iter zero", func(o *Options) { o.MaxIter = 0 }, true},
		{"max iter negative", func(o *Options) { o.MaxIter = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
