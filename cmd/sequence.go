package cmd

import (
	"context"
	"fmt"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func newSequenceCommand(opts *rootOptions) *cobra.Command {
	var org, branch string

	seq := &cobra.Command{
		Use:   "sequence",
		Short: "Print the next LR or OGPL number without reserving it",
	}
	seq.PersistentFlags().StringVar(&org, "org", "", "organization id")
	_ = seq.MarkPersistentFlagRequired("org")

	lr := &cobra.Command{
		Use:   "lr",
		Short: "Next LR number for a branch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoot(cmd.Context(), opts, func(root *CompositionRoot) error {
				orgID, err := kernel.UUIDFromString(org)
				if err != nil {
					return fmt.Errorf("--org: %w", err)
				}
				var branchID *kernel.UUID
				if branch != "" {
					id, parseErr := kernel.UUIDFromString(branch)
					if parseErr != nil {
						return fmt.Errorf("--branch: %w", parseErr)
					}
					branchID = &id
				}

				query, err := queries.NewGenerateLRNumberQuery(orgID, branchID)
				if err != nil {
					return err
				}
				number, err := root.CreateGenerateLRNumberQueryHandler().Handle(cmd.Context(), query)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), number)
				return err
			})
		},
	}
	lr.Flags().StringVar(&branch, "branch", "", "origin branch id (default branch code DC when omitted)")

	ogpl := &cobra.Command{
		Use:   "ogpl",
		Short: "Next OGPL number for today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoot(cmd.Context(), opts, func(root *CompositionRoot) error {
				orgID, err := kernel.UUIDFromString(org)
				if err != nil {
					return fmt.Errorf("--org: %w", err)
				}

				query, err := queries.NewGenerateOGPLNumberQuery(orgID)
				if err != nil {
					return err
				}
				number, err := root.CreateGenerateOGPLNumberQueryHandler().Handle(cmd.Context(), query)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), number)
				return err
			})
		},
	}

	seq.AddCommand(lr, ogpl)
	return seq
}

func withRoot(ctx context.Context, opts *rootOptions, fn func(root *CompositionRoot) error) error {
	deps, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer deps.close()

	root, err := NewCompositionRoot(ctx, deps.cfg, deps.db, deps.logger)
	if err != nil {
		return err
	}
	defer func() { _ = root.Close(context.Background()) }()

	return fn(root)
}
