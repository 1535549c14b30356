package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/philipparndt/stlpath/internal/session"
	"github.com/spf13/cobra"
)

// pathRequest holds the endpoint and output flags shared by path and watch
type pathRequest struct {
	from     string
	to       string
	fromFace int
	toFace   int
	output   string
}

var pathReq pathRequest

var pathCmd = &cobra.Command{
	Use:   "path [file]",
	Short: "Find the shortest face path between two points",
	Long: `Resolve two points (or two face indices) to faces of the welded surface and
write the faces of the shortest path as "x,y,z,nx,ny,nz,face_index" lines.`,
	Example: `  stlpath path part.stl --from 0,0,0 --to 10,5,2
  stlpath path part.stl --from-face 0 --to-face 42 -o path.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pathReq.validate(); err != nil {
			return err
		}

		s := newSession(appConfig)
		if _, err := loadFile(s, args[0]); err != nil {
			return err
		}

		result, err := pathReq.search(s)
		if err != nil {
			return err
		}
		return pathReq.write(cmd, s, result)
	},
}

func init() {
	addPathFlags(pathCmd, &pathReq)
	rootCmd.AddCommand(pathCmd)
}

func addPathFlags(cmd *cobra.Command, req *pathRequest) {
	cmd.Flags().StringVar(&req.from, "from", "", "start point as x,y,z")
	cmd.Flags().StringVar(&req.to, "to", "", "end point as x,y,z")
	cmd.Flags().IntVar(&req.fromFace, "from-face", -1, "start face index")
	cmd.Flags().IntVar(&req.toFace, "to-face", -1, "end face index")
	cmd.Flags().StringVarP(&req.output, "output", "o", "", "export file (default: export.path from config, else stdout)")
	cmd.MarkFlagsMutuallyExclusive("from", "from-face")
	cmd.MarkFlagsMutuallyExclusive("to", "to-face")
}

func (r pathRequest) validate() error {
	if r.from == "" && r.fromFace < 0 {
		return errors.New("a start is required: use --from x,y,z or --from-face N")
	}
	if r.to == "" && r.toFace < 0 {
		return errors.New("an end is required: use --to x,y,z or --to-face N")
	}
	return nil
}

// endpoints resolves the flags to face indices on the current mesh
func (r pathRequest) endpoints(s *session.Session) (int, int, error) {
	start, err := r.resolve(s, r.from, r.fromFace)
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	end, err := r.resolve(s, r.to, r.toFace)
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

func (r pathRequest) resolve(s *session.Session, point string, face int) (int, error) {
	if point == "" {
		return face, nil
	}
	p, err := parsePoint(point)
	if err != nil {
		return 0, err
	}
	return s.Locate(p)
}

func (r pathRequest) search(s *session.Session) (*session.Result, error) {
	start, end, err := r.endpoints(s)
	if err != nil {
		return nil, err
	}

	result, err := s.FindPath(start, end)
	if err != nil {
		return nil, err
	}
	if !result.Found {
		return result, fmt.Errorf("no path between faces %d and %d: they lie on disconnected parts of the surface", start, end)
	}
	return result, nil
}

func (r pathRequest) destination() string {
	if r.output != "" {
		return r.output
	}
	return appConfig.Export.Path
}

// write exports the last path to the output file or stdout
func (r pathRequest) write(cmd *cobra.Command, s *session.Session, result *session.Result) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Path from face %d to face %d: %d faces\n", result.Start, result.End, len(result.Path))

	dest := r.destination()
	if dest == "" {
		return s.Save(cmd.OutOrStdout())
	}
	if err := writeFile(dest, s.Save); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Path data saved to %s\n", dest)
	return nil
}

// writeFile writes through a temp file and renames it into place so that a
// watcher of dest never sees a half-written export
func writeFile(dest string, save func(io.Writer) error) error {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
