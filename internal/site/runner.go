package site

import (
	"context"
	"errors"
	"time"

	"git.home.luguber.info/inful/pagemill/internal/metrics"
)

// runStages executes stages in order, recording timing and stopping on the
// first fatal error. Warnings are recorded and the pipeline continues.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	rec := bs.Generator.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.Errors = append(bs.Report.Errors, se)
			recordStageResult(bs.Report, rec, st.Name, StageResultCanceled)
			return se
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[string(st.Name)] = dur
		rec.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			recordStageResult(bs.Report, rec, st.Name, StageResultSuccess)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Unknown errors are fatal by default.
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.StageErrorKinds[st.Name] = se.Kind

		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			recordStageResult(bs.Report, rec, st.Name, StageResultWarning)
			continue
		case StageErrorCanceled:
			bs.Report.Errors = append(bs.Report.Errors, se)
			recordStageResult(bs.Report, rec, st.Name, StageResultCanceled)
			return se
		default:
			bs.Report.Errors = append(bs.Report.Errors, se)
			recordStageResult(bs.Report, rec, st.Name, StageResultFatal)
			return se
		}
	}
	return nil
}

func recordStageResult(r *BuildReport, rec metrics.Recorder, stage StageName, result StageResult) {
	sc := r.StageCounts[stage]
	switch result {
	case StageResultSuccess:
		sc.Success++
	case StageResultWarning:
		sc.Warning++
	case StageResultFatal:
		sc.Fatal++
	case StageResultCanceled:
		sc.Canceled++
	}
	r.StageCounts[stage] = sc
	rec.IncStageResult(string(stage), metrics.ResultLabel(result))
}
