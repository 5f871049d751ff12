package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewPasswordCmd exposes the password reset flow.
func NewPasswordCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password reset",
	}

	var email string
	forgot := &cobra.Command{
		Use:   "forgot",
		Short: "Email a password reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				if err := svc.reset.RequestReset(ctx, email); err != nil {
					return nil, err
				}
				return map[string]string{"message": "Reset email sent"}, nil
			})
		},
	}
	forgot.Flags().StringVar(&email, "email", "", "account email")
	_ = forgot.MarkFlagRequired("email")

	var token string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a reset token",
		Long:  "Set a new password with a reset token. The password is taken from RESET_PASSWORD, or read as one line from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				if err := svc.reset.ResetPassword(ctx, token, password); err != nil {
					return nil, err
				}
				return map[string]string{"message": "Password reset successful"}, nil
			})
		},
	}
	reset.Flags().StringVar(&token, "token", "", "reset token from the email")
	_ = reset.MarkFlagRequired("token")

	cmd.AddCommand(forgot, reset)
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	if p := os.Getenv("RESET_PASSWORD"); p != "" {
		return p, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
