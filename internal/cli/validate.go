package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"solomon-validator/internal/adapters/solomon"
	"solomon-validator/internal/api/dto"
	"solomon-validator/internal/report"
	"solomon-validator/internal/services"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *session) *cobra.Command {
	var (
		lateReturn string
		format     string
		trace      bool
	)

	cmd := &cobra.Command{
		Use:   "validate <instance-file> <solution-file>",
		Short: "Validate one solution file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lateReturn == "" {
				lateReturn = a.cfg.LateReturnPolicy
			}
			policy, err := services.ParseLateReturnPolicy(lateReturn)
			if err != nil {
				return &ExitError{Code: ExitInvalid, Err: err}
			}
			if format != "text" && format != "json" {
				return &ExitError{Code: ExitInvalid, Err: fmt.Errorf("unknown format %q (want text or json)", format)}
			}

			inst, err := solomon.ReadInstanceFile(args[0])
			if err != nil {
				return inputExit(err)
			}
			sol, err := solomon.ReadSolutionFile(args[1])
			if err != nil {
				return inputExit(err)
			}

			start := time.Now()
			res := services.Validate(inst, sol, services.WithLateReturnPolicy(policy))
			a.logger.Debug().
				Str("instance", inst.Name).
				Str("solution", args[1]).
				Bool("valid", res.Valid()).
				Dur("dur", time.Since(start)).
				Msg("solution validated")

			switch format {
			case "json":
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(dto.NewValidationResponse(inst.Name, args[1], &res, trace)); err != nil {
					return fmt.Errorf("validate: encode json: %w", err)
				}
			default:
				h := report.Header{Instance: inst.Name, Solution: args[1]}
				if err := report.WriteText(a.stdout, h, &res, trace); err != nil {
					return fmt.Errorf("validate: %w", err)
				}
			}

			if !res.Valid() {
				return &ExitError{Code: ExitInvalid}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lateReturn, "late-return", "", "late depot return severity: warning or error (default from LATE_RETURN_POLICY)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the chronology of every route")

	return cmd
}
