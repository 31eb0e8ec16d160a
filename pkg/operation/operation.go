package operation

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/importfix/pkg/config"
	"github.com/walteh/importfix/pkg/log"
	"github.com/walteh/importfix/pkg/status"
	"github.com/walteh/importfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidEncoding is returned for files that are not valid UTF-8
var ErrInvalidEncoding = errors.Base("file is not valid UTF-8")

// ScriptExtensions are the file extensions that get rewritten
var ScriptExtensions = []string{"js", "jsx"}

// 🎯 Operation is a unit of work the runner executes
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything a rewrite run needs
type Options struct {
	// Config holds the root directory, subdirectories and error policy
	Config *config.Config
	// Files reads and writes script files
	Files status.FileManager
	// Tracker records per-file outcomes and builds the report
	Tracker status.StatusReporter
	// Replacer applies Rules to file content
	Replacer text.TextReplacer
	// Rules are applied in order; defaults to text.DefaultRules()
	Rules []text.Rule
	// Logger prints one line per modified or failed file
	Logger *log.Logger
}

// withDefaults fills every optional field
func (o Options) withDefaults() (Options, error) {
	if o.Config == nil {
		return o, errors.Errorf("config is required")
	}
	if o.Files == nil || o.Tracker == nil {
		mgr := status.New(nil)
		if o.Files == nil {
			o.Files = mgr
		}
		if o.Tracker == nil {
			o.Tracker = mgr
		}
	}
	if o.Replacer == nil {
		o.Replacer = text.NewPatternReplacer()
	}
	if o.Rules == nil {
		o.Rules = text.DefaultRules()
	}
	if err := o.Replacer.ValidateRules(o.Rules); err != nil {
		return o, errors.Errorf("validating rules: %w", err)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, io.Discard, zerolog.Disabled)
	}
	return o, nil
}

// 📋 Rewrite runs a rewrite operation and returns its report.
// The report is returned even when err is not nil and lists what was
// modified before the failure.
func Rewrite(ctx context.Context, opts Options) (*status.Report, error) {
	op, err := NewRewriteOperation(opts)
	if err != nil {
		return nil, err
	}

	runner := NewRunner(zerolog.Ctx(ctx))
	err = runner.Run(ctx, op)
	return op.Report(), err
}
