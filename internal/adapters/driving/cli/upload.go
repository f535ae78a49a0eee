package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driven/dropfolder"
	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

var (
	uploadScope    scopeFlags
	uploadLevel    string
	uploadWatchDir string
)

// watchSendInterval paces the background sends in watch mode.
const watchSendInterval = 3 * time.Second

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload normative documents",
	Long: `Upload normative documents (PDF, HTML, TXT) into one of the four
level buckets: nazionale, regionale, provinciale, comunale.

Each file is tagged with the scope in effect when it is enqueued, clamped
to the bucket's level. With --watch, documents dropped into the directory
are picked up and sent automatically until interrupted.

Examples:
  urbanista upload prg.pdf --level comunale --comune Tarquinia
  urbanista upload dpr_380.pdf --level nazionale
  urbanista upload --watch ./da_caricare --level regionale --regione Lazio`,
	RunE: runUpload,
}

func init() {
	uploadScope.register(uploadCmd)
	uploadCmd.Flags().StringVarP(&uploadLevel, "level", "l", string(domain.LevelMunicipal),
		"target bucket: nazionale, regionale, provinciale, comunale")
	uploadCmd.Flags().StringVarP(&uploadWatchDir, "watch", "w", "",
		"watch a directory and auto-upload dropped documents")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	bucket, err := domain.ParseLevel(uploadLevel)
	if err != nil {
		return fmt.Errorf("invalid --level: %w", err)
	}
	if len(args) == 0 && uploadWatchDir == "" {
		return errors.New("nothing to do: pass files or --watch DIR")
	}

	// Settle the scope before anything is enqueued: enqueue snapshots it.
	scope, err := uploadScope.resolve(cmd.Context())
	if err != nil {
		return err
	}
	if uploadScope.set() && scopeBroker != nil {
		if err := scopeBroker.Publish(scope, driving.SourceSystem); err != nil {
			return fmt.Errorf("setting scope: %w", err)
		}
	}

	if len(args) > 0 {
		if err := enqueueAndSend(cmd, bucket, args); err != nil {
			return err
		}
	}

	if uploadWatchDir != "" {
		return watchAndSend(cmd, bucket)
	}
	return nil
}

func enqueueAndSend(cmd *cobra.Command, bucket domain.Level, paths []string) error {
	result, err := uploadService.Enqueue(bucket, paths)
	if err != nil {
		return fmt.Errorf("enqueue failed: %w", err)
	}
	for path, reason := range result.Rejected {
		cmd.PrintErrf("skipped %s: %v\n", path, reason)
	}
	if len(result.Accepted) == 0 {
		return errors.New("no uploadable files")
	}

	if err := uploadService.SendAll(cmd.Context(), bucket); err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return errors.New("not signed in: run 'urbanista login' first")
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	reportBucket(cmd, bucket)
	return nil
}

// reportBucket prints the terminal state of every task in the bucket.
func reportBucket(cmd *cobra.Command, bucket domain.Level) {
	for _, task := range uploadService.Tasks(bucket) {
		switch task.Status {
		case domain.UploadSucceeded:
			cmd.Printf("  ✓ %s (%s)\n", task.Name, task.TargetScope.Describe())
		case domain.UploadFailed:
			cmd.Printf("  ✗ %s: %s\n", task.Name, task.ErrorDetail)
		}
	}
}

// watchAndSend runs the drop-folder watcher alongside a periodic sender
// until the user interrupts.
func watchAndSend(cmd *cobra.Command, bucket domain.Level) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher := dropfolder.New(uploadWatchDir, bucket, uploadService)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Watch(ctx)
	}()

	cmd.Printf("Watching %s (bucket: %s). Press Ctrl-C to stop.\n", uploadWatchDir, bucket)

	ticker := time.NewTicker(watchSendInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-watchErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case <-ticker.C:
			if err := uploadService.SendAll(ctx, bucket); err != nil {
				if errors.Is(err, domain.ErrAuthRequired) {
					return errors.New("not signed in: run 'urbanista login' first")
				}
				cmd.PrintErrf("send failed: %v\n", err)
			}
		case <-ctx.Done():
			<-watchErr
			reportBucket(cmd, bucket)
			return nil
		}
	}
}
