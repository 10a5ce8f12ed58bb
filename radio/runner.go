package radio

import (
	"context"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Engine runs the analyses. It holds only immutable run configuration, so
// one Engine may serve concurrent batches.
type Engine struct {
	Params Params
	Groups GroupConfig
	// Progress, when set, receives advisory per-unit progress. It may be
	// called from multiple goroutines concurrently.
	Progress ProgressFunc
}

// NewEngine builds an Engine, filling zero-valued knobs from the defaults
// so a partially-specified Params still behaves.
func NewEngine(p Params, groups GroupConfig) *Engine {
	def := DefaultParams()
	if p.Azimuth.MinPoints <= 0 {
		p.Azimuth.MinPoints = def.Azimuth.MinPoints
	}
	if p.Azimuth.MaxDistance <= 0 {
		p.Azimuth.MaxDistance = def.Azimuth.MaxDistance
	}
	if p.Azimuth.ClusterThreshold <= 0 {
		p.Azimuth.ClusterThreshold = def.Azimuth.ClusterThreshold
	}
	if p.Azimuth.ClusterEps <= 0 {
		p.Azimuth.ClusterEps = def.Azimuth.ClusterEps
	}
	if p.Azimuth.ClusterMinSamples <= 0 {
		p.Azimuth.ClusterMinSamples = def.Azimuth.ClusterMinSamples
	}
	if p.Swap.Beamwidth <= 0 {
		p.Swap.Beamwidth = def.Swap.Beamwidth
	}
	if p.Swap.MinSamples <= 0 {
		p.Swap.MinSamples = def.Swap.MinSamples
	}
	if p.Neighbor.SearchRadius <= 0 {
		p.Neighbor.SearchRadius = def.Neighbor.SearchRadius
	}
	if p.Neighbor.MaxNeighbors <= 0 {
		p.Neighbor.MaxNeighbors = def.Neighbor.MaxNeighbors
	}
	return &Engine{Params: p, Groups: groups}
}

// Results bundles one complete analysis run.
type Results struct {
	Azimuth     []AzimuthResult    `json:"azimuth"`
	Swaps       []SwapResult       `json:"swaps"`
	Coverage    []CoverageResult   `json:"coverage"`
	Neighbors   []NeighborRelation `json:"neighbors"`
	Coordinates []CoordinateResult `json:"coordinates"`

	CoverageSummary CoverageSummary `json:"coverage_summary"`
	SwapSummary     SwapSummary     `json:"swap_summary"`

	GeneratedAt time.Time `json:"generated_at"`
}

// RunAll runs every analysis over one snapshot. The analyses are
// independent reads of the same immutable Dataset, so they run
// concurrently; each one is internally parallel as well. The error return
// exists for context cancellation between analyses; the analyses
// themselves never fail, they emit placeholder rows instead.
func (e *Engine) RunAll(ctx context.Context, ds *Dataset) (*Results, error) {
	res := &Results{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res.Azimuth = e.AnalyzeAzimuth(ds)
		return ctx.Err()
	})
	g.Go(func() error {
		res.Swaps = e.DetectSwaps(ds)
		return ctx.Err()
	})
	g.Go(func() error {
		res.Coverage = e.ProfileCoverage(ds)
		return ctx.Err()
	})
	g.Go(func() error {
		res.Neighbors = e.FindNeighbors(ds)
		return ctx.Err()
	})
	g.Go(func() error {
		res.Coordinates = e.EstimateAllCoordinates(ds)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.CoverageSummary = SummarizeCoverage(res.Coverage, ds)
	res.SwapSummary = SummarizeSwaps(res.Swaps)
	res.GeneratedAt = time.Now().UTC()
	return res, nil
}

// workers returns the fan-out width for one analysis.
func (e *Engine) workers() int {
	if e.Params.Workers > 0 {
		return e.Params.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// runUnits fans n independent units of work across the worker pool and
// waits for all of them. Units receive their index and write results into
// their own slot, so no merge synchronization is needed. Progress is
// reported through an atomic counter at unit granularity.
func (e *Engine) runUnits(stage string, n int, unit func(i int)) {
	if n == 0 {
		return
	}
	workers := e.workers()
	if workers > n {
		workers = n
	}

	var done atomic.Int64
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				unit(i)
				if e.Progress != nil {
					e.Progress(stage, int(done.Add(1)), n)
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// guardUnit returns a deferred recovery handler for one unit of work. A
// panicking unit substitutes its fallback (typically a placeholder row)
// and the batch carries on; the overall row-count contract holds.
func (e *Engine) guardUnit(fallback func()) func() {
	return func() {
		if r := recover(); r != nil {
			log.Printf("[ENGINE] unit of work failed: %v", r)
			if fallback != nil {
				fallback()
			}
		}
	}
}
