package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-resumekit/internal/assets"
	"github.com/alnah/go-resumekit/internal/config"
)

// Environment is everything a command touches outside its arguments. Tests
// build one with buffers, a fixed clock and the embedded skins.
type Environment struct {
	Now         func() time.Time
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader assets.AssetLoader // replaced by --asset-path
	Config      *config.Config     // base settings before any config file
}

// DefaultEnv wires the process streams, the wall clock and built-in skins.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		Config:      config.DefaultConfig(),
	}
}
