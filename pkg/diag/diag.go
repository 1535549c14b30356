// Package diag carries non-fatal findings produced while decoding and
// building a mesh.
package diag

import "fmt"

// Severity ranks a diagnostic
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Stage names the processing step that produced a diagnostic
type Stage string

const (
	StageSniff     Stage = "sniff"
	StageASCII     Stage = "ascii"
	StageBinary    Stage = "binary"
	StageWeld      Stage = "weld"
	StageFaces     Stage = "faces"
	StageAdjacency Stage = "adjacency"
)

// Diagnostic is a single finding
type Diagnostic struct {
	Severity Severity
	Stage    Stage
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Stage, d.Message)
}

// List collects diagnostics in the order they were raised
type List []Diagnostic

// Add appends a formatted diagnostic
func (l *List) Add(sev Severity, stage Stage, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Severity: sev,
		Stage:    stage,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Infof appends an info diagnostic
func (l *List) Infof(stage Stage, format string, args ...any) {
	l.Add(Info, stage, format, args...)
}

// Warnf appends a warning diagnostic
func (l *List) Warnf(stage Stage, format string, args ...any) {
	l.Add(Warning, stage, format, args...)
}

// Has reports whether any diagnostic has at least the given severity
func (l List) Has(min Severity) bool {
	for _, d := range l {
		if d.Severity >= min {
			return true
		}
	}
	return false
}

// ByStage returns the diagnostics raised by one stage
func (l List) ByStage(stage Stage) List {
	var out List
	for _, d := range l {
		if d.Stage == stage {
			out = append(out, d)
		}
	}
	return out
}
