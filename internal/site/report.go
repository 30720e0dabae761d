package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ReportFileName is the report artifact written into the output root.
const ReportFileName = "build-report.json"

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StageCount aggregates outcome counts for a stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

// BuildReport captures high-level metrics about a site generation run.
type BuildReport struct {
	ID              string
	SchemaVersion   int
	Documents       int // documents included in the site
	Drafts          int // documents excluded as drafts
	Assets          int
	RenderedPages   int // per-document pages written (indexes excluded)
	TagCount        int
	Start           time.Time
	End             time.Time
	Outcome         BuildOutcome
	Errors          []error // fatal errors causing build abortion (at most one today)
	Warnings        []error // non-fatal issues recorded along the way
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
}

func newBuildReport() *BuildReport {
	return &BuildReport{
		ID:              uuid.NewString(),
		SchemaVersion:   1,
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

// deriveOutcome computes the overall outcome from recorded stage results.
func (r *BuildReport) deriveOutcome() {
	switch {
	case r.hasKind(StageErrorCanceled):
		r.Outcome = OutcomeCanceled
	case r.hasKind(StageErrorFatal) || len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

func (r *BuildReport) hasKind(kind StageErrorKind) bool {
	for _, k := range r.StageErrorKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (r *BuildReport) finish() {
	r.End = time.Now()
	if r.Outcome == "" {
		r.deriveOutcome()
	}
}

// Duration returns total build wall-clock time.
func (r *BuildReport) Duration() time.Duration { return r.End.Sub(r.Start) }

// serializableReport is the JSON wire form; errors flatten to strings.
type serializableReport struct {
	ID              string             `json:"id"`
	SchemaVersion   int                `json:"schema_version"`
	Documents       int                `json:"documents"`
	Drafts          int                `json:"drafts"`
	Assets          int                `json:"assets"`
	RenderedPages   int                `json:"rendered_pages"`
	TagCount        int                `json:"tag_count"`
	Start           time.Time          `json:"start"`
	End             time.Time          `json:"end"`
	DurationMS      float64            `json:"duration_ms"`
	Outcome         BuildOutcome       `json:"outcome"`
	Errors          []string           `json:"errors,omitempty"`
	Warnings        []string           `json:"warnings,omitempty"`
	StageDurationMS map[string]float64 `json:"stage_duration_ms"`
	StageErrorKinds map[string]string  `json:"stage_error_kinds,omitempty"`
}

func (r *BuildReport) toSerializable() serializableReport {
	s := serializableReport{
		ID:              r.ID,
		SchemaVersion:   r.SchemaVersion,
		Documents:       r.Documents,
		Drafts:          r.Drafts,
		Assets:          r.Assets,
		RenderedPages:   r.RenderedPages,
		TagCount:        r.TagCount,
		Start:           r.Start,
		End:             r.End,
		DurationMS:      float64(r.Duration().Milliseconds()),
		Outcome:         r.Outcome,
		StageDurationMS: make(map[string]float64, len(r.StageDurations)),
	}
	for name, d := range r.StageDurations {
		s.StageDurationMS[name] = float64(d.Microseconds()) / 1000.0
	}
	if len(r.StageErrorKinds) > 0 {
		s.StageErrorKinds = make(map[string]string, len(r.StageErrorKinds))
		for name, kind := range r.StageErrorKinds {
			s.StageErrorKinds[string(name)] = string(kind)
		}
	}
	for _, err := range r.Errors {
		s.Errors = append(s.Errors, err.Error())
	}
	for _, err := range r.Warnings {
		s.Warnings = append(s.Warnings, err.Error())
	}
	return s
}

// Persist writes the report as JSON into the given directory (best effort
// artifact; callers may log and continue on failure).
func (r *BuildReport) Persist(dir string) error {
	data, err := json.MarshalIndent(r.toSerializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal build report: %w", err)
	}
	path := filepath.Join(dir, ReportFileName)
	// #nosec G306 -- report is a public build artifact
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write build report: %w", err)
	}
	return nil
}
