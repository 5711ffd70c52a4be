// Package search implements the multi-threaded backtracking search of
// spec §4.J: find_solution, count_solutions, true_candidates, and a
// Knuth-style Monte-Carlo estimate_solutions, all built over
// internal/kernel.Kernel clones and internal/logic.Engine's
// brute-forcing technique subset.
//
// The teacher's internal/solver/solver.go backtracks too (guessAndSolve
// et al.), but single-threaded, over its own hardwired 9x9 board, and
// with no cancellation or solution-counting modes. This package keeps
// the teacher's branching rule — smallest-candidate-count cell first,
// ascending value order — and its clone-then-recurse shape, and adds
// the concurrency spec §5 calls for: workers claim top-level subtrees,
// golang.org/x/sync/errgroup supervises them (the one new dependency
// this module pulls in beyond the teacher's own go.mod, since the
// teacher has no concurrent code to borrow a pattern from), a shared
// mutex guards solution callbacks, and math/rand/v2 seeds one PRNG per
// worker from a root PRNG for randomized search and the Monte-Carlo
// estimator.
package search

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/errs"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/logic"
	"github.com/kpitt/gridlogic/internal/mask"
)

// Options configures one search call, per spec §4.J/§5.
type Options struct {
	MultiThread bool
	Random      bool
	// NumWorkers bounds concurrent top-level subtrees when MultiThread
	// is set; 0 means a reasonable default (4).
	NumWorkers int
	// Seed seeds the root PRNG for Random mode; 0 picks an
	// arbitrary-but-deterministic seed from the call, since
	// math/rand/v2 has no package-level global source left to seed.
	Seed uint64
}

func (o Options) workers() int {
	if o.NumWorkers > 0 {
		return o.NumWorkers
	}
	return 4
}

// Grid is a completed board's values, row-major, 1-based.
type Grid [][]int

func gridFromKernel(k *kernel.Kernel) Grid {
	b := k.Board
	g := make(Grid, b.Height)
	for r := range g {
		row := make([]int, b.Width)
		for c := range row {
			v, _ := mask.GetValue(k.Candidates(r, c))
			row[c] = v
		}
		g[r] = row
	}
	return g
}

// branchCell picks the unset cell with the smallest candidate count
// greater than 1, ties broken by lowest (row,col), per spec §4.J.
func branchCell(k *kernel.Kernel) (r, c int, ok bool) {
	best := -1
	bestR, bestC := -1, -1
	b := k.Board
	for rr := 0; rr < b.Height; rr++ {
		for cc := 0; cc < b.Width; cc++ {
			m := k.Candidates(rr, cc)
			if mask.IsSet(m) {
				continue
			}
			n := mask.PopCount(m)
			if n <= 1 {
				continue
			}
			if best == -1 || n < best {
				best = n
				bestR, bestC = rr, cc
			}
		}
	}
	return bestR, bestC, best != -1
}

// consolidate runs the brute-forcing logic subset to a fixpoint: hidden
// + naked singles, locked candidates, and fast per-constraint
// StepLogic, per spec §4.J.
func consolidate(eng *logic.Engine) (constraint.LogicResult, error) {
	for {
		res, _, err := eng.StepLogic(true)
		if errors.Is(err, errs.ErrContradiction) {
			return constraint.ResultInvalid, nil
		}
		if err != nil || res == constraint.ResultInvalid || res == constraint.ResultPuzzleComplete || res == constraint.ResultNone {
			return res, err
		}
	}
}

// visitor is called once per discovered complete solution. Returning
// false stops the entire search (used by FindSolution and a capped
// CountSolutions).
type visitor func(Grid) bool

// descend runs one single-threaded DFS branch from k, calling visit
// for every completed solution it reaches, until visit says stop or
// ctx is cancelled.
func descend(ctx context.Context, k *kernel.Kernel, rng *rand.Rand, visit visitor, mu *sync.Mutex, stop *atomic.Bool) error {
	if stop.Load() {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	eng := logic.New(k)
	res, err := consolidate(eng)
	if err != nil {
		return err
	}
	if res == constraint.ResultInvalid {
		return nil
	}
	if res == constraint.ResultPuzzleComplete || k.Board.IsComplete() {
		mu.Lock()
		cont := visit(gridFromKernel(k))
		mu.Unlock()
		if !cont {
			stop.Store(true)
		}
		return nil
	}

	r, c, ok := branchCell(k)
	if !ok {
		return nil
	}
	values := mask.Values(mask.Candidates(k.Candidates(r, c)))
	if rng != nil {
		rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
	}
	for _, v := range values {
		if stop.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		clone := k.Clone()
		cres, err := clone.SetValue(r, c, v)
		if err != nil && !errors.Is(err, errs.ErrContradiction) {
			return err
		}
		if cres == constraint.ResultInvalid {
			continue
		}
		if err := descend(ctx, clone, rng, visit, mu, stop); err != nil {
			return err
		}
	}
	return nil
}

// run dispatches the search either single-threaded or by partitioning
// the first branch cell's candidates across worker goroutines, per
// spec §5's "each thread claims a subtree atomically".
func run(ctx context.Context, k *kernel.Kernel, opts Options, visit visitor) error {
	mu := &sync.Mutex{}
	stop := &atomic.Bool{}
	root := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	if !opts.MultiThread {
		var rng *rand.Rand
		if opts.Random {
			rng = root
		}
		return descend(ctx, k, rng, visit, mu, stop)
	}

	eng := logic.New(k)
	res, err := consolidate(eng)
	if err != nil {
		return err
	}
	if res == constraint.ResultInvalid {
		return nil
	}
	if res == constraint.ResultPuzzleComplete || k.Board.IsComplete() {
		mu.Lock()
		visit(gridFromKernel(k))
		mu.Unlock()
		return nil
	}
	r, c, ok := branchCell(k)
	if !ok {
		return nil
	}
	values := mask.Values(mask.Candidates(k.Candidates(r, c)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, v := range values {
		v := v
		workerRNG := rand.New(rand.NewPCG(root.Uint64(), root.Uint64()^uint64(i)))
		g.Go(func() error {
			if stop.Load() {
				return nil
			}
			clone := k.Clone()
			cres, err := clone.SetValue(r, c, v)
			if err != nil && !errors.Is(err, errs.ErrContradiction) {
				return err
			}
			if cres == constraint.ResultInvalid {
				return nil
			}
			var rng *rand.Rand
			if opts.Random {
				rng = workerRNG
			}
			return descend(gctx, clone, rng, visit, mu, stop)
		})
	}
	return g.Wait()
}

// FindSolution returns the first completed solution, or ok=false if
// none exists (or the context was cancelled before one was found).
func FindSolution(ctx context.Context, k *kernel.Kernel, opts Options) (Grid, bool, error) {
	var found Grid
	var ok bool
	err := run(ctx, k, opts, func(g Grid) bool {
		found, ok = g, true
		return false
	})
	if err != nil && !ok {
		return nil, false, err
	}
	return found, ok, nil
}

// CountSolutions counts completions up to max (0 means exhaustive),
// invoking progress periodically and solutionCB (under a mutex,
// non-deterministic order when multi-threaded) on every completion.
func CountSolutions(ctx context.Context, k *kernel.Kernel, max int, opts Options, progress func(count int), solutionCB func(Grid)) (int, error) {
	var count int64
	err := run(ctx, k, opts, func(g Grid) bool {
		n := atomic.AddInt64(&count, 1)
		if solutionCB != nil {
			solutionCB(g)
		}
		if progress != nil {
			progress(int(n))
		}
		return max <= 0 || int(n) < max
	})
	return int(count), err
}

// TrueCandidates returns, per (cell,value), the number of completions
// containing it, capped at numSolutionsCap completions examined (0
// means exhaustive). The result grid's [r][c][v-1] entry is that count.
func TrueCandidates(ctx context.Context, k *kernel.Kernel, numSolutionsCap int, opts Options) ([][][]int, error) {
	b := k.Board
	counts := make([][][]int, b.Height)
	for r := range counts {
		counts[r] = make([][]int, b.Width)
		for c := range counts[r] {
			counts[r][c] = make([]int, b.MaxValue)
		}
	}
	var mu sync.Mutex
	var examined int64
	err := run(ctx, k, opts, func(g Grid) bool {
		mu.Lock()
		for r, row := range g {
			for c, v := range row {
				counts[r][c][v-1]++
			}
		}
		mu.Unlock()
		n := atomic.AddInt64(&examined, 1)
		return numSolutionsCap <= 0 || int(n) < numSolutionsCap
	})
	return counts, err
}

// EstimateResult is the Monte-Carlo estimate of the number of
// completions, per spec §4.J's estimate_solutions.
type EstimateResult struct {
	Mean       float64
	StdError   float64
	Iterations int
	CI95Low    float64
	CI95High   float64
}

// EstimateSolutions runs Knuth's random-descent estimator: at each
// branch point it picks one candidate uniformly at random and
// multiplies a running weight by the branch's candidate count, so that
// a single descent to a solution (or a dead end, contributing 0) is an
// unbiased single-sample estimate of the total completion count.
// Averaging numIters independent samples gives the estimate, standard
// error, and a 95% confidence interval; progress is reported after
// every iteration.
func EstimateSolutions(ctx context.Context, k *kernel.Kernel, numIters int, opts Options, progress func(r EstimateResult)) (EstimateResult, error) {
	if numIters <= 0 {
		numIters = 1
	}
	root := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x243f6a8885a308d3))

	sampleOnce := func(rng *rand.Rand) (float64, error) {
		cur := k
		weight := 1.0
		for {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			default:
			}
			eng := logic.New(cur)
			res, err := consolidate(eng)
			if err != nil {
				return 0, err
			}
			if res == constraint.ResultInvalid {
				return 0, nil
			}
			if res == constraint.ResultPuzzleComplete || cur.Board.IsComplete() {
				return weight, nil
			}
			r, c, ok := branchCell(cur)
			if !ok {
				return weight, nil
			}
			values := mask.Values(mask.Candidates(cur.Candidates(r, c)))
			if len(values) == 0 {
				return 0, nil
			}
			weight *= float64(len(values))
			v := values[rng.IntN(len(values))]
			clone := cur.Clone()
			cres, err := clone.SetValue(r, c, v)
			if err != nil && !errors.Is(err, errs.ErrContradiction) {
				return 0, err
			}
			if cres == constraint.ResultInvalid {
				return 0, nil
			}
			cur = clone
		}
	}

	samples := make([]float64, 0, numIters)
	var mu sync.Mutex

	runBatch := func(n, workers int) error {
		if !opts.MultiThread || workers <= 1 {
			for i := 0; i < n; i++ {
				s, err := sampleOnce(root)
				if err != nil {
					return err
				}
				mu.Lock()
				samples = append(samples, s)
				mu.Unlock()
				if progress != nil {
					progress(summarize(samples))
				}
			}
			return nil
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i < n; i++ {
			i := i
			rng := rand.New(rand.NewPCG(root.Uint64(), root.Uint64()^uint64(i)))
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				s, err := sampleOnce(rng)
				if err != nil {
					return err
				}
				mu.Lock()
				samples = append(samples, s)
				snapshot := append([]float64{}, samples...)
				mu.Unlock()
				if progress != nil {
					progress(summarize(snapshot))
				}
				return nil
			})
		}
		return g.Wait()
	}

	if err := runBatch(numIters, opts.workers()); err != nil {
		return EstimateResult{}, err
	}
	return summarize(samples), nil
}

func summarize(samples []float64) EstimateResult {
	n := len(samples)
	if n == 0 {
		return EstimateResult{}
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(n)
	var variance float64
	if n > 1 {
		for _, s := range samples {
			d := s - mean
			variance += d * d
		}
		variance /= float64(n - 1)
	}
	stderr := math.Sqrt(variance / float64(n))
	return EstimateResult{
		Mean:       mean,
		StdError:   stderr,
		Iterations: n,
		CI95Low:    mean - 1.96*stderr,
		CI95High:   mean + 1.96*stderr,
	}
}
