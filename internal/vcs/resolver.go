package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tupyy/editor-heartbeat/internal/settings"
	"go.uber.org/zap"
)

const (
	// DefaultBranch is returned whenever the branch cannot be resolved.
	DefaultBranch = "master"

	gitExecutable = "git"
)

var gitArgs = []string{"rev-parse", "--abbrev-ref", "HEAD"}

// Resolver resolves the current git branch.
// The first failure disables version control in settings and no further process is spawned
// until the user enables it again.
type Resolver struct {
	settings settings.Provider
	runner   Runner
	dir      string
}

type Option func(r *Resolver)

func WithRunner(runner Runner) Option {
	return func(r *Resolver) {
		r.runner = runner
	}
}

// WithDirectory sets the directory where git is run. Default is the working directory.
func WithDirectory(dir string) Option {
	return func(r *Resolver) {
		r.dir = dir
	}
}

func New(s settings.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		settings: s,
		runner:   execRunner{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Resolver) CurrentBranch() string {
	if !r.settings.Bool(settings.EnableVersionControl) {
		return DefaultBranch
	}

	branch, err := r.probe(context.TODO())
	if err != nil {
		zap.S().Errorw("cannot resolve git branch. version control disabled", "error", err)
		r.settings.SetBool(settings.EnableVersionControl, false)

		return DefaultBranch
	}

	return branch
}

func (r *Resolver) probe(ctx context.Context) (string, error) {
	stdout, stderr, err := r.runner.Run(ctx, r.dir, gitExecutable, gitArgs...)
	if err != nil {
		if errors.Is(err, ErrExecutableNotFound) {
			return "", err
		}
		return "", fmt.Errorf("git failed '%w'", err)
	}

	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return "", fmt.Errorf("git error: %s", msg)
	}

	branch := strings.TrimSpace(string(stdout))
	if branch == "" {
		return DefaultBranch, nil
	}

	return branch, nil
}
