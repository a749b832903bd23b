// Package pipeline implements the three-stage Prepare -> Solve -> Emit
// request runtime and its monotonic-microsecond event log.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/iu7-aa/sssp-lab/internal/dotgraph"
	"github.com/iu7-aa/sssp-lab/internal/resultfmt"
	"github.com/iu7-aa/sssp-lab/internal/sssp/parallel"
	apperrors "github.com/iu7-aa/sssp-lab/pkg/errors"
	"github.com/iu7-aa/sssp-lab/pkg/utils"
)

var tracer = otel.Tracer("sssp-pipeline")

// Config configures one pipeline run.
type Config struct {
	GraphFile string
	StartName string
	Targets   []string
	Threads   int
	ResultDir string
	Clock     utils.Clock
	Logger    utils.Logger
}

// Run issues n copies of the configured request through Prepare -> Solve ->
// Emit and returns the sorted event log. The first error observed by any
// stage is reported on a shared error channel rather than by panicking, so
// a failure in one request cannot unwind a stage goroutine mid-loop and
// leak the requests still behind it: every stage still performs exactly n
// hand-offs, and failed requests simply carry no result into the next
// stage.
func Run(ctx context.Context, cfg Config, n int) ([]Event, error) {
	if cfg.Clock == nil {
		cfg.Clock = utils.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = utils.NewDefaultLogger(utils.LevelInfo, os.Stderr)
	}
	if n <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArguments, "request count must be >= 1")
	}

	t0 := cfg.Clock.Now()
	eventLog := NewEventLog()

	q1 := NewBlockingQueue[*Request]()
	q2 := NewBlockingQueue[*Request]()
	q3 := NewBlockingQueue[*Request]()

	errCh := make(chan error, 3)
	var failed sync.Once
	recordErr := func(err error) {
		if err == nil {
			return
		}
		failed.Do(func() { errCh <- err })
	}

	logEvent := func(stage Stage, requestID int, kind EventKind) {
		dt := cfg.Clock.Since(t0)
		eventLog.Append(Event{
			TimeUs:    dt.Microseconds(),
			RequestID: requestID,
			Stage:     stage,
			Kind:      kind,
		})
	}

	startSpan := func(stage Stage, requestID int) trace.Span {
		_, span := tracer.Start(ctx, stage.String(), trace.WithAttributes(
			attribute.Int("request_id", requestID),
		))
		return span
	}

	// Generator: enqueue n copies of the same request shape before stage 1
	// starts consuming.
	for i := 0; i < n; i++ {
		q1.Push(&Request{
			ID:              i,
			GraphFile:       cfg.GraphFile,
			StartNodeName:   cfg.StartName,
			TargetNodeNames: append([]string(nil), cfg.Targets...),
		})
	}

	var wg sync.WaitGroup
	wg.Add(3)

	// Prepare: load the graph and resolve names to indices.
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			req := q1.Pop()
			logEvent(StagePrepare, req.ID, EventStart)
			span := startSpan(StagePrepare, req.ID)

			if err := prepare(req); err != nil {
				req.Failed = err
				span.RecordError(err)
				recordErr(err)
				cfg.Logger.Error("prepare failed for request %d: %v", req.ID, err)
			}

			span.End()
			logEvent(StagePrepare, req.ID, EventEnd)
			q2.Push(req)
		}
	}()

	// Solve: run the parallel engine with the configured thread count.
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			req := q2.Pop()
			logEvent(StageSolve, req.ID, EventStart)
			span := startSpan(StageSolve, req.ID)

			if req.Failed == nil {
				req.Result = parallel.Run(req.Graph, req.StartIndex, cfg.Threads)
			}

			span.End()
			logEvent(StageSolve, req.ID, EventEnd)
			q3.Push(req)
		}
	}()

	// Emit: locate the minimum-distance target, reconstruct its path, and
	// write one report file per request.
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			req := q3.Pop()
			logEvent(StageEmit, req.ID, EventStart)
			span := startSpan(StageEmit, req.ID)

			if req.Failed == nil {
				if err := emit(cfg.ResultDir, req); err != nil {
					req.Failed = err
					span.RecordError(err)
					recordErr(err)
					cfg.Logger.Error("emit failed for request %d: %v", req.ID, err)
				}
			}

			span.End()
			logEvent(StageEmit, req.ID, EventEnd)
		}
	}()

	wg.Wait()

	select {
	case err := <-errCh:
		return eventLog.Sorted(), err
	default:
		return eventLog.Sorted(), nil
	}
}

// prepare loads the graph and resolves the start/target names to indices.
func prepare(req *Request) error {
	g, err := dotgraph.Load(req.GraphFile)
	if err != nil {
		return err
	}
	req.Graph = g

	startIdx, ok := g.FindVertex(req.StartNodeName)
	if !ok {
		return apperrors.Wrap(apperrors.CodeNodeNotFound,
			fmt.Sprintf("start node not found in graph: %s", req.StartNodeName), nil)
	}
	req.StartIndex = startIdx

	req.TargetIndices = make([]int, 0, len(req.TargetNodeNames))
	for _, name := range req.TargetNodeNames {
		idx, ok := g.FindVertex(name)
		if !ok {
			return apperrors.Wrap(apperrors.CodeNodeNotFound,
				fmt.Sprintf("target node not found in graph: %s", name), nil)
		}
		req.TargetIndices = append(req.TargetIndices, idx)
	}
	return nil
}

// emit renders the request's text report and writes it to resultDir.
func emit(resultDir string, req *Request) error {
	text := resultfmt.BuildText(req.Graph, req.StartNodeName, req.TargetNodeNames, req.TargetIndices, req.Result)
	path := resultPath(resultDir, req.GraphFile, req.ID)
	if err := writeTextFile(path, text); err != nil {
		return err
	}
	req.ResultPath = path
	return nil
}

// resultPath mirrors the reference pipeline's file-naming: insert
// "_result_<id>" before the input file's extension.
func resultPath(resultDir, graphFile string, id int) string {
	base := filepath.Base(graphFile)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(resultDir, name+"_result_"+strconv.Itoa(id)+ext)
}

func writeTextFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.Wrap(apperrors.CodeFileOpenFailure, "failed to create result directory", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return apperrors.Wrap(apperrors.CodeFileOpenFailure, "failed to write result file", err)
	}
	return nil
}
