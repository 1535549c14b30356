package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/stlpath/internal/config"
	"github.com/philipparndt/stlpath/pkg/geometry"
	"github.com/philipparndt/stlpath/pkg/pathfind"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStrip writes n unit squares along X, each split into two facets.
// Each offset starts another, disconnected strip.
func writeStrip(t *testing.T, n int, offsets ...float64) string {
	t.Helper()
	if len(offsets) == 0 {
		offsets = []float64{0}
	}

	var sb strings.Builder
	sb.WriteString("solid strip\n")
	for _, off := range offsets {
		for i := 0; i < n; i++ {
			x := float64(i) + off
			for _, tri := range [][3][2]float64{
				{{x, 0}, {x + 1, 0}, {x + 1, 1}},
				{{x, 0}, {x + 1, 1}, {x, 1}},
			} {
				sb.WriteString("facet normal 0 0 1\nouter loop\n")
				for _, p := range tri {
					fmt.Fprintf(&sb, "vertex %g %g 0\n", p[0], p[1])
				}
				sb.WriteString("endloop\nendfacet\n")
			}
		}
	}
	sb.WriteString("endsolid strip\n")

	path := filepath.Join(t.TempDir(), "strip.stl")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0644))
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command against an isolated default config
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	cfgPath := filepath.Join(t.TempDir(), "stlpath.yaml")
	require.NoError(t, config.Default().SaveTo(cfgPath))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--log-level", "error"}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input   string
		want    geometry.Vector3
		wantErr bool
	}{
		{input: "1,2,3", want: geometry.NewVector3(1, 2, 3)},
		{input: " -1.5 , 0 , 1e-3 ", want: geometry.NewVector3(-1.5, 0, 0.001)},
		{input: "1,2", wantErr: true},
		{input: "1,2,3,4", wantErr: true},
		{input: "a,b,c", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePoint(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathRequestValidate(t *testing.T) {
	assert.Error(t, pathRequest{fromFace: -1, toFace: -1}.validate())
	assert.Error(t, pathRequest{from: "0,0,0", toFace: -1}.validate())
	assert.Error(t, pathRequest{fromFace: 0, toFace: -1}.validate())
	assert.NoError(t, pathRequest{from: "0,0,0", to: "1,1,1", fromFace: -1, toFace: -1}.validate())
	assert.NoError(t, pathRequest{fromFace: 0, toFace: 3}.validate())
	assert.NoError(t, pathRequest{from: "0,0,0", fromFace: -1, toFace: 3}.validate())
}

func TestPathCommandByFace(t *testing.T) {
	file := writeStrip(t, 2)
	out := filepath.Join(t.TempDir(), "export", "path.txt")

	_, stderr, err := execute(t, "path", file, "--from-face", "0", "--to-face", "3", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Path from face 0 to face 3: 2 faces")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	records, err := pathfind.ReadRecords(f)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].FaceIndex)
	assert.Equal(t, 3, records[1].FaceIndex)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), records[1].Normal)
}

func TestPathCommandByPointToStdout(t *testing.T) {
	file := writeStrip(t, 3)

	stdout, _, err := execute(t, "path", file, "--from", "0.7,0.2,0", "--to", "2.3,0.7,0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, pathfind.ExportHeader, lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",0"), "first record should be face 0: %s", lines[1])
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], ",5"), "last record should be face 5: %s", lines[len(lines)-1])
}

func TestPathCommandNoPath(t *testing.T) {
	file := writeStrip(t, 1, 0, 10)

	_, _, err := execute(t, "path", file, "--from-face", "0", "--to-face", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no path between faces 0 and 2")
}

func TestPathCommandRequiresEndpoints(t *testing.T) {
	file := writeStrip(t, 1)

	_, _, err := execute(t, "path", file, "--from-face", "0")
	assert.Error(t, err)
}

func TestPathCommandInvalidFace(t *testing.T) {
	file := writeStrip(t, 1)

	_, _, err := execute(t, "path", file, "--from-face", "0", "--to-face", "9")
	assert.ErrorIs(t, err, pathfind.ErrInvalidFace)
}

func TestPathCommandUnparsableFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "junk.stl")
	require.NoError(t, os.WriteFile(file, []byte("not an stl"), 0644))

	_, _, err := execute(t, "path", file, "--from-face", "0", "--to-face", "0")
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	file := writeStrip(t, 2)

	stdout, _, err := execute(t, "info", file, "--longest", "1", "--open-edges")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Name: strip")
	assert.Contains(t, stdout, "Format: ascii")
	assert.Contains(t, stdout, "Faces: 4")
	assert.Contains(t, stdout, "Vertices: 6")
	assert.Contains(t, stdout, "Components: 1")
	assert.Contains(t, stdout, "Watertight: false")
	assert.Contains(t, stdout, "Longest Edges:")
	assert.Contains(t, stdout, "Open Edges:")
}

func TestToleranceFlagOverridesConfig(t *testing.T) {
	file := writeStrip(t, 1)

	_, _, err := execute(t, "--tolerance=-1", "info", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weld_tolerance")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "stlpath.yaml")

	stdout, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, *config.Default(), *cfg)

	_, _, err = execute(t, "config", "init", path)
	assert.Error(t, err, "existing file must not be overwritten")

	_, _, err = execute(t, "config", "init", path, "--force")
	assert.NoError(t, err)
}
