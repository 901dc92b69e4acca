package solve

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/conda/gosolv/pkg/lib/profile"
	"github.com/conda/gosolv/pkg/metrics"
	"github.com/conda/gosolv/pkg/repo"
	"github.com/conda/gosolv/pkg/solver"
)

// Result is the rendered outcome of one request.
type Result struct {
	Request string   `json:"request"`
	Steps   []string `json:"steps"`
}

func solveFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if timeoutArg > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeoutArg)
		defer cancel()
	}

	if listenArg != "" {
		metrics.RegisterSolver()
		go serveMetrics(listenArg)
	}

	channels := make([]*repo.Channel, 0, len(channelArgs))
	for _, path := range channelArgs {
		ch, err := repo.LoadChannel(path)
		if err != nil {
			return err
		}
		log.WithField("channel", ch.Name).Debugf("loaded %d packages", len(ch.Packages))
		metrics.EmitChannelSize(ch.Name, len(ch.Packages))
		channels = append(channels, ch)
	}

	results := make([]Result, len(requestArgs))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range requestArgs {
		i, path := i, path
		g.Go(func() error {
			res, err := solveOne(ctx, channels, path)
			if err != nil {
				return errors.Wrapf(err, "request %s", path)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out, err := yaml.Marshal(results)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// solveOne runs one request on a pool of its own; pools are not safe for
// concurrent use, so concurrent requests never share one.
func solveOne(ctx context.Context, channels []*repo.Channel, path string) (*Result, error) {
	req, err := repo.LoadRequest(path)
	if err != nil {
		return nil, err
	}
	pool, err := repo.BuildPool(channels...)
	if err != nil {
		return nil, err
	}
	jobs, err := repo.BuildJobs(pool, req)
	if err != nil {
		return nil, err
	}

	tracer := conflictTracer{}
	if traceArg {
		tracer.next = solver.LoggingTracer{Writer: os.Stderr}
	}
	options := []solver.Option{solver.WithDecisionBudget(budgetArg), solver.WithTracer(tracer)}
	s, err := solver.New(pool, options...)
	if err != nil {
		return nil, err
	}
	instrumented := solver.NewInstrumentedSolver(s, metrics.RegisterSolveSuccess, metrics.RegisterSolveFailure)

	tx, err := instrumented.Solve(ctx, jobs)
	if err != nil {
		return nil, err
	}

	steps := make([]string, 0, len(tx.Steps))
	for _, st := range tx.Steps {
		steps = append(steps, fmt.Sprintf("%s %s", st.Kind, pool.SolvableString(st.Solvable)))
	}
	log.WithField("request", path).Debugf("solved with %d steps", len(steps))
	return &Result{Request: path, Steps: steps}, nil
}

// conflictTracer counts the conflicts a search runs into, by rule kind,
// and forwards each position to an optional inner tracer.
type conflictTracer struct {
	next solver.Tracer
}

func (t conflictTracer) Trace(p solver.SearchPosition) {
	metrics.EmitSolveConflict(p.Conflict().Kind.String())
	if t.next != nil {
		t.next.Trace(p)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	profile.RegisterHandlers(mux)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Warn("metrics server stopped")
	}
}
