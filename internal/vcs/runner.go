package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrExecutableNotFound is returned when the executable cannot be found in PATH.
var ErrExecutableNotFound = errors.New("executable not found")

//go:generate mockgen -package=vcs -destination=mock_runner.go --build_flags=--mod=mod . Runner
type Runner interface {
	// Run runs the command in dir and returns what it wrote to stdout and stderr.
	Run(ctx context.Context, dir string, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, []byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: '%s'", ErrExecutableNotFound, name)
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	return stdout.Bytes(), stderr.Bytes(), err
}
