// =============================================================================
// Compute Sales - Diagnostics Module
// =============================================================================
//
// This module models the diagnostic warning stream as an explicit sink that
// the core pipeline stages write to. Every skipped record produces exactly
// one Warning event describing which stage rejected it, why, and where it
// was in the input document.
//
// SINK IMPLEMENTATIONS:
//   - LogSink:  production wiring, emits each warning through a zap logger
//   - Recorder: in-memory collection, used by tests and the validate command
//   - Multi:    fan-out to several sinks (e.g. log AND count)
//
// Keeping the sink an interface keeps the catalogue and sales packages pure:
// they produce warning events, they do not decide how warnings are presented.
//
// =============================================================================

package diag

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// WARNING EVENT
// =============================================================================

// Stage identifies the pipeline stage that produced a warning.
type Stage string

const (
	StageCatalogue Stage = "catalogue"
	StageSales     Stage = "sales"
)

// Reason identifies the specific validation that rejected a record.
// The first failing check in a stage's validation chain determines the
// reason; the remaining checks are not evaluated.
type Reason string

const (
	ReasonMissingTitle    Reason = "missing_title"
	ReasonMissingPrice    Reason = "missing_price"
	ReasonInvalidPrice    Reason = "invalid_price"
	ReasonNegativePrice   Reason = "negative_price"
	ReasonMissingSaleID   Reason = "missing_sale_id"
	ReasonMissingProduct  Reason = "missing_product"
	ReasonInvalidQuantity Reason = "invalid_quantity"
	ReasonUnknownProduct  Reason = "unknown_product"
)

// Warning represents a single recoverable anomaly: one input record that
// was skipped without aborting the run.
type Warning struct {
	// Stage is the pipeline stage that skipped the record.
	Stage Stage

	// Reason is the validation that failed.
	Reason Reason

	// Index is the zero-based position of the record in its input document.
	Index int

	// Subject is the product title or sale identifier, when known.
	Subject string

	// Message is the human-readable warning line.
	Message string
}

// String implements fmt.Stringer for plain-text presentation.
func (w Warning) String() string {
	return fmt.Sprintf("Warning: %s", w.Message)
}

// =============================================================================
// SINK INTERFACE
// =============================================================================

// Sink receives warning events from the pipeline stages.
type Sink interface {
	Warn(w Warning)
}

// =============================================================================
// RECORDER
// =============================================================================

// Recorder is a Sink that collects warnings in memory. Tests assert against
// the collected events; the validate command uses it to count skips.
type Recorder struct {
	Warnings []Warning
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Warn appends the warning to the collection.
func (r *Recorder) Warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// Count returns the number of recorded warnings.
func (r *Recorder) Count() int {
	return len(r.Warnings)
}

// CountReason returns the number of recorded warnings with the given reason.
func (r *Recorder) CountReason(reason Reason) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Reason == reason {
			n++
		}
	}
	return n
}

// =============================================================================
// LOG SINK
// =============================================================================

// LogSink emits warnings through a zap logger. This is the production
// diagnostic stream: one warn-level line per skipped record, on stderr.
type LogSink struct {
	log *zap.SugaredLogger
}

// NewLogSink creates a LogSink backed by the given logger.
func NewLogSink(log *zap.SugaredLogger) *LogSink {
	return &LogSink{log: log}
}

// Warn logs the warning with its structured context.
func (s *LogSink) Warn(w Warning) {
	s.log.Warnw(w.Message,
		"stage", string(w.Stage),
		"reason", string(w.Reason),
		"index", w.Index,
	)
}

// =============================================================================
// MULTI SINK
// =============================================================================

// multiSink fans a warning out to several sinks.
type multiSink struct {
	sinks []Sink
}

// Multi returns a Sink that forwards each warning to every given sink.
func Multi(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) Warn(w Warning) {
	for _, s := range m.sinks {
		s.Warn(w)
	}
}

// =============================================================================
// LOGGER CONSTRUCTION
// =============================================================================

// NewLogger builds the process-wide zap logger. Diagnostics go to stderr
// with a console encoder so the report on stdout stays clean and pipeable.
//
// PARAMETERS:
//   - level:   configured log level ("debug", "info", "warn", "error")
//   - verbose: when true, forces the level down to debug
//
// RETURNS:
//   - A sugared logger, or an error if the level string is invalid.
func NewLogger(level string, verbose bool) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.Sugar(), nil
}
