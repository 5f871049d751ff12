package cli

import (
	"context"

	"github.com/spf13/cobra"

	"learner-activity-service/internal/domain"
)

// NewUserCmd groups learner record maintenance.
func NewUserCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage learner records",
	}
	cmd.AddCommand(newUserCreateCmd(configPath))
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List learners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				return svc.users.List(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <user-id>",
		Short: "Print a learner with quiz history and progress scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				user, err := svc.users.Get(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return newUserView(user), nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "activity <user-id>",
		Short: "Print a learner's daily activity logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				return svc.activity.Activity(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "hide <user-id>",
		Short: "Hide a learner from listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				return svc.users.Hide(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unhide <user-id>",
		Short: "Restore a hidden learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				return svc.users.Unhide(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				if err := svc.users.Delete(ctx, args[0]); err != nil {
					return nil, err
				}
				return map[string]string{"deletedUserId": args[0]}, nil
			})
		},
	})
	cmd.AddCommand(newUserScoreCmd(configPath))
	return cmd
}

func newUserCreateCmd(configPath *string) *cobra.Command {
	var nu domain.NewUser
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a learner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				return svc.users.Create(ctx, nu)
			})
		},
	}
	cmd.Flags().StringVar(&nu.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&nu.Username, "username", "", "username")
	cmd.Flags().StringVar(&nu.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&nu.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserScoreCmd(configPath *string) *cobra.Command {
	var score float64
	cmd := &cobra.Command{
		Use:   "score <user-id> <quiz-type>",
		Short: "Set the progress page score for a quiz type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, *configPath, func(ctx context.Context, svc *services) (any, error) {
				return svc.users.UpdateProgressScore(ctx, args[0], args[1], score)
			})
		},
	}
	cmd.Flags().Float64Var(&score, "score", 0, "score to store")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

// userView is the printed form of a learner; every progress slot is listed,
// unscored ones as -1.
type userView struct {
	domain.User
	Progress map[domain.ProgressField]float64 `json:"progress"`
}

func newUserView(user domain.User) userView {
	return userView{User: user, Progress: user.ProgressScores()}
}
