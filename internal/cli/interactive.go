package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/smartlist/internal/gate"
	"github.com/idilsaglam/smartlist/internal/tui"
	"github.com/idilsaglam/smartlist/internal/ui"
)

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list view",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := tui.Run(a.list); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

func (a *app) newGateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Password overlay for protected paths (cosmetic, not a security boundary)",
	}

	var password string
	open := &cobra.Command{
		Use:   "open <path>",
		Short: "Visit a path, prompting for the password if it is locked",
		Args:  exactArgs(1, "gate open <path>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.gate.Open(args[0])
			state := s.State()
			if state == gate.Locked {
				if cmd.Flags().Changed("password") {
					if err := s.Submit(password); err != nil {
						return fmt.Errorf("%s: %w", args[0], err)
					}
					state = s.State()
				} else {
					var err error
					if state, err = tui.RunGate(s); err != nil {
						return fmt.Errorf("gate: %w", err)
					}
				}
			}
			if state != gate.Unlocked {
				return fmt.Errorf("%s: access denied", args[0])
			}
			a.log.Debug("path unlocked", zap.String("path", args[0]))
			ui.OK(cmd.OutOrStdout(), "unlocked "+args[0])
			return nil
		},
	}
	open.Flags().StringVar(&password, "password", "", "submit this password instead of prompting")

	status := &cobra.Command{
		Use:   "status <path>",
		Short: "Print whether a visit to path would start locked",
		Args:  exactArgs(1, "gate status <path>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.gate.Open(args[0])
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"path":      args[0],
					"protected": a.gate.IsProtected(args[0]),
					"state":     s.State().String(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], s.State())
			return nil
		},
	}

	lock := &cobra.Command{
		Use:   "lock",
		Short: "Forget the stored unlock token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.gate.Lock(); err != nil {
				return fmt.Errorf("lock: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "locked")
			return nil
		},
	}

	cmd.AddCommand(open, status, lock)
	return cmd
}
