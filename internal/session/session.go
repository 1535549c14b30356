// Package session holds the state of one interactive path-finding run: the
// loaded mesh, the selected faces and the last path.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/stlpath/pkg/diag"
	"github.com/philipparndt/stlpath/pkg/geometry"
	"github.com/philipparndt/stlpath/pkg/mesh"
	"github.com/philipparndt/stlpath/pkg/pathfind"
	"github.com/philipparndt/stlpath/pkg/stl"
	"go.uber.org/zap"
)

// MaxSelections is the number of faces that define a path
const MaxSelections = 2

var (
	ErrNoMesh          = errors.New("no mesh loaded")
	ErrSelectionFull   = errors.New("start and end faces are already selected")
	ErrAlreadySelected = errors.New("face already selected")
	ErrNoPathData      = errors.New("no path data available")
)

// Options configures decoding and mesh building
type Options struct {
	Decoder stl.Decoder
	Builder mesh.Builder
}

// Snapshot is one loaded file. It is never modified after Load returns.
type Snapshot struct {
	Source      string
	Name        string
	Format      stl.Format
	Partial     bool
	Mesh        *mesh.Mesh
	Diagnostics diag.List
	LoadedAt    time.Time
}

// Selection is a picked point and the face it resolved to
type Selection struct {
	Face  int
	Point geometry.Vector3
}

// Result is the outcome of one path search
type Result struct {
	Start   int
	End     int
	Found   bool
	Path    []int
	Records []pathfind.Record
}

// Session replaces process-wide viewer state. The mesh snapshot is swapped
// atomically so readers never see a half-built graph; selections and the
// last result are guarded by mu.
type Session struct {
	ID uuid.UUID

	opts    Options
	log     *zap.Logger
	current atomic.Pointer[Snapshot]

	mu         sync.Mutex
	selections []Selection
	result     *Result
}

// New creates an empty session. A nil logger discards output.
func New(opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		ID:   id,
		opts: opts,
		log:  log.With(zap.String("session", id.String())),
	}
}

// Load decodes an STL buffer and replaces the current mesh. On failure the
// previous mesh stays in place. Selections and the last path refer to face
// indices of the old mesh and are cleared.
func (s *Session) Load(source string, data []byte) (*Snapshot, error) {
	start := time.Now()

	model, err := s.opts.Decoder.Decode(data)
	if err != nil {
		s.log.Error("failed to decode STL", zap.String("source", source), zap.Error(err))
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}

	m := s.opts.Builder.Build(model.Triangles)

	snap := &Snapshot{
		Source:      source,
		Name:        model.Name,
		Format:      model.Format,
		Partial:     model.Partial,
		Mesh:        m,
		Diagnostics: append(append(diag.List{}, model.Diagnostics...), m.Diagnostics...),
		LoadedAt:    time.Now(),
	}
	logDiagnostics(s.log, source, snap.Diagnostics)

	s.mu.Lock()
	s.current.Store(snap)
	s.selections = nil
	s.result = nil
	s.mu.Unlock()

	s.log.Info("mesh loaded",
		zap.String("source", source),
		zap.Stringer("format", model.Format),
		zap.Int("triangles", len(model.Triangles)),
		zap.Int("vertices", m.Stats.Vertices),
		zap.Int("adjacent_pairs", m.Stats.AdjacentPairs),
		zap.Int("components", m.Stats.Components),
		zap.Duration("elapsed", time.Since(start)),
	)
	return snap, nil
}

// Snapshot returns the current snapshot or nil
func (s *Session) Snapshot() *Snapshot {
	return s.current.Load()
}

// Mesh returns the current mesh or nil
func (s *Session) Mesh() *mesh.Mesh {
	if snap := s.current.Load(); snap != nil {
		return snap.Mesh
	}
	return nil
}

func (s *Session) mesh() (*mesh.Mesh, error) {
	m := s.Mesh()
	if m == nil {
		return nil, ErrNoMesh
	}
	return m, nil
}

// Locate resolves a point to the nearest face of the current mesh
func (s *Session) Locate(p geometry.Vector3) (int, error) {
	m, err := s.mesh()
	if err != nil {
		return -1, err
	}
	return m.Locate(p)
}

// Select adds the face nearest to p as the next endpoint. Selecting the
// second face runs the path search and returns its result.
func (s *Session) Select(p geometry.Vector3) (int, *Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.mesh()
	if err != nil {
		return -1, nil, err
	}
	if len(s.selections) >= MaxSelections {
		return -1, nil, ErrSelectionFull
	}

	face, err := m.Locate(p)
	if err != nil {
		return -1, nil, fmt.Errorf("failed to locate face: %w", err)
	}
	for _, sel := range s.selections {
		if sel.Face == face {
			return face, nil, fmt.Errorf("%w: %d", ErrAlreadySelected, face)
		}
	}

	s.selections = append(s.selections, Selection{Face: face, Point: p})
	s.log.Debug("face selected", zap.Int("face", face), zap.Int("selection", len(s.selections)))

	if len(s.selections) < MaxSelections {
		return face, nil, nil
	}

	result, err := s.search(m, s.selections[0].Face, s.selections[1].Face)
	if err != nil {
		return face, nil, err
	}
	s.result = result
	return face, result, nil
}

// Selections returns a copy of the selected endpoints
func (s *Session) Selections() []Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Selection(nil), s.selections...)
}

// FindPath searches between two face indices and keeps the result for Save
func (s *Session) FindPath(start, end int) (*Result, error) {
	m, err := s.mesh()
	if err != nil {
		return nil, err
	}
	result, err := s.search(m, start, end)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
	return result, nil
}

// PathBetween resolves both points to faces and searches between them.
// Unlike Select, both points may resolve to the same face.
func (s *Session) PathBetween(from, to geometry.Vector3) (*Result, error) {
	m, err := s.mesh()
	if err != nil {
		return nil, err
	}
	start, err := m.Locate(from)
	if err != nil {
		return nil, fmt.Errorf("failed to locate start face: %w", err)
	}
	end, err := m.Locate(to)
	if err != nil {
		return nil, fmt.Errorf("failed to locate end face: %w", err)
	}
	return s.FindPath(start, end)
}

func (s *Session) search(m *mesh.Mesh, start, end int) (*Result, error) {
	path, found, err := pathfind.FindPath(m, start, end)
	if err != nil {
		return nil, err
	}

	result := &Result{Start: start, End: end, Found: found, Path: path}
	if !found {
		s.log.Info("no path found",
			zap.Int("start", start),
			zap.Int("end", end),
			zap.Bool("same_component", m.Connected(start, end)),
		)
		return result, nil
	}

	result.Records, err = pathfind.Extract(m, path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract path data: %w", err)
	}
	s.log.Info("path found", zap.Int("start", start), zap.Int("end", end), zap.Int("faces", len(path)))
	return result, nil
}

// Result returns the last path search outcome or nil
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Reset clears selections and the last path. The mesh is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	s.selections = nil
	s.result = nil
	s.mu.Unlock()
	s.log.Debug("selections reset")
}

// Save writes the last path in export format
func (s *Session) Save(w io.Writer) error {
	result := s.Result()
	if result == nil || len(result.Records) == 0 {
		return ErrNoPathData
	}
	if err := pathfind.WriteRecords(w, result.Records); err != nil {
		return fmt.Errorf("failed to write path data: %w", err)
	}
	return nil
}

func logDiagnostics(log *zap.Logger, source string, diags diag.List) {
	for _, d := range diags {
		fields := []zap.Field{zap.String("source", source), zap.String("stage", string(d.Stage))}
		switch d.Severity {
		case diag.Error:
			log.Error(d.Message, fields...)
		case diag.Warning:
			log.Warn(d.Message, fields...)
		default:
			log.Debug(d.Message, fields...)
		}
	}
}
