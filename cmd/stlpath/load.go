package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/stlpath/internal/config"
	"github.com/philipparndt/stlpath/internal/logger"
	"github.com/philipparndt/stlpath/internal/session"
	"github.com/philipparndt/stlpath/pkg/geometry"
	"github.com/philipparndt/stlpath/pkg/mesh"
	"github.com/philipparndt/stlpath/pkg/stl"
)

func newSession(cfg *config.Config) *session.Session {
	return session.New(session.Options{
		Decoder: stl.Decoder{
			Workers:           cfg.Decode.Workers,
			ParallelThreshold: cfg.Decode.ParallelThreshold,
		},
		Builder: mesh.Builder{Tolerance: cfg.Mesh.WeldTolerance},
	}, logger.Log)
}

// loadFile reads filename into the session
func loadFile(s *session.Session, filename string) (*session.Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return s.Load(filename, data)
}

// parsePoint parses "x,y,z"
func parsePoint(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("invalid point %q: expected x,y,z", s)
	}

	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid point %q: %w", s, err)
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
