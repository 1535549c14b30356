package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/philipparndt/stlpath/internal/logger"
	"github.com/philipparndt/stlpath/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchReq      pathRequest
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Recompute the path whenever the STL file changes",
	Long: `Load the file, export the path, then keep watching the file. Every change
reloads the mesh and rewrites the export. A file that fails to decode is
reported and the previous mesh is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addPathFlags(watchCmd, &watchReq)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "wait this long after the last change before reloading")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := watchReq.validate(); err != nil {
		return err
	}
	filename := args[0]

	s := newSession(appConfig)
	var mu sync.Mutex
	recompute := func() error {
		mu.Lock()
		defer mu.Unlock()

		if _, err := loadFile(s, filename); err != nil {
			return err
		}
		result, err := watchReq.search(s)
		if err != nil {
			return err
		}
		return watchReq.write(cmd, s, result)
	}

	if err := recompute(); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(filename, watchDebounce, logger.Log)
	if err != nil {
		return err
	}
	defer fw.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", fw.Path())
	err = fw.Run(ctx, func(path string) {
		logger.Log.Info("reloading", zap.String("file", path))
		if err := recompute(); err != nil {
			logger.Log.Error("reload failed", zap.String("file", path), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
