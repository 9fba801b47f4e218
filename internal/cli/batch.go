package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"text/tabwriter"
	"time"

	"solomon-validator/internal/adapters/solomon"
	"solomon-validator/internal/app"
	"solomon-validator/internal/domain"
	"solomon-validator/internal/services"

	"github.com/spf13/cobra"
)

func newBatchCmd(a *session) *cobra.Command {
	var (
		jobs       int
		lateReturn string
		store      bool
	)

	cmd := &cobra.Command{
		Use:   "batch <instance-file> <solution-dir-or-glob>",
		Short: "Validate every solution file of one instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if lateReturn == "" {
				lateReturn = a.cfg.LateReturnPolicy
			}
			policy, err := services.ParseLateReturnPolicy(lateReturn)
			if err != nil {
				return &ExitError{Code: ExitInvalid, Err: err}
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = a.cfg.BatchJobs
			}

			inst, err := solomon.ReadInstanceFile(args[0])
			if err != nil {
				return inputExit(err)
			}

			files, err := solutionFiles(args[1])
			if err != nil {
				return &ExitError{Code: ExitMissing, Err: err}
			}

			items, err := services.ValidateBatch(ctx, services.BatchRequest{
				Instance:  inst,
				Solutions: files,
				Jobs:      jobs,
				Options:   []services.Option{services.WithLateReturnPolicy(policy)},
			}, solomon.FileReader{})
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}

			if store {
				if err := a.storeBatch(cmd, inst.Name, items); err != nil {
					return err
				}
			}

			valid := 0
			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			for _, it := range items {
				switch {
				case it.Err != nil:
					fmt.Fprintf(tw, "ERROR\t%s\t%v\n", it.Solution, it.Err)
				case it.Result.Valid():
					valid++
					fmt.Fprintf(tw, "VALID\t%s\tdistance=%.2f\tvehicles=%d\n",
						it.Solution, it.Result.TotalDistance, it.Result.VehiclesUsed)
				default:
					fmt.Fprintf(tw, "INVALID\t%s\t%d error(s)\t%d warning(s)\n",
						it.Solution, len(it.Result.Errors), len(it.Result.Warnings))
				}
			}
			if err := tw.Flush(); err != nil {
				return fmt.Errorf("batch: %w", err)
			}
			fmt.Fprintf(a.stdout, "%d/%d valid\n", valid, len(items))

			if valid != len(items) {
				return &ExitError{Code: ExitInvalid}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", 0, "concurrent validations (default from BATCH_JOBS)")
	cmd.Flags().StringVar(&lateReturn, "late-return", "", "late depot return severity: warning or error")
	cmd.Flags().BoolVar(&store, "store", false, "record results in the configured results store")

	return cmd
}

func (a *session) storeBatch(cmd *cobra.Command, instance string, items []services.BatchItem) error {
	ctx := cmd.Context()

	if a.cfg.DBDriver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(a.cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("batch: create db dir: %w", err)
		}
	}
	repo, conn, err := app.OpenResults(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if repo == nil {
		return errors.New("batch: --store needs a results store (DB_DRIVER is none)")
	}
	defer conn.Close()

	now := time.Now()
	for _, it := range items {
		if it.Result == nil {
			continue
		}
		rec := domain.NewValidationRecord(instance, filepath.Base(it.Solution), *it.Result, now)
		if _, err := repo.SaveResult(ctx, rec); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
	}
	a.logger.Info().Str("instance", instance).Int("count", len(items)).Msg("batch results stored")

	return nil
}

// solutionFiles expands a directory (every regular file, sorted) or a glob pattern.
func solutionFiles(target string) ([]string, error) {
	if fi, err := os.Stat(target); err == nil && fi.IsDir() {
		var files []string
		err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != target {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list solutions in %s: %w", target, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no solution files in %s", target)
		}
		return files, nil
	}

	files, err := filepath.Glob(target)
	if err != nil {
		return nil, fmt.Errorf("solution pattern %q: %w", target, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no solution files match %q: %w", target, solomon.ErrFileNotFound)
	}
	slices.Sort(files)
	return files, nil
}
