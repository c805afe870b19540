package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-db2md/internal/hints"
	"github.com/alnah/go-db2md/internal/pandoc"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Runner pandoc.CommandRunner
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		Runner: &pandoc.ExecRunner{},
	}
}

// pandocPath returns path, falling back to the environment variable. An
// empty result means pandoc on PATH.
func (e *Environment) pandocPath(path string) string {
	if path == "" {
		path = e.Getenv(hints.PandocEnv)
	}
	return path
}

// pandoc returns a converter for the executable at pandocPath(path).
func (e *Environment) pandoc(path string) *pandoc.Converter {
	c := pandoc.New(e.pandocPath(path))
	c.Runner = e.Runner
	return c
}
