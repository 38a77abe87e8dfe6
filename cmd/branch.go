package cmd

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/spf13/cobra"
)

func newBranchCommand(opts *rootOptions) *cobra.Command {
	branch := &cobra.Command{
		Use:   "branch",
		Short: "Manage the branches LR numbers are prefixed with",
	}

	var org, name, code string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a branch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orgID, err := kernel.UUIDFromString(org)
			if err != nil {
				return fmt.Errorf("--org: %w", err)
			}

			return withRoot(cmd.Context(), opts, func(root *CompositionRoot) error {
				b := ports.Branch{
					ID:             kernel.NewUUID(),
					OrganizationID: orgID,
					Name:           name,
					Code:           code,
				}
				if err := root.BranchRepository().Add(cmd.Context(), b); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", b.ID, kernel.BranchCodeFrom(code))
				return err
			})
		},
	}
	add.Flags().StringVar(&org, "org", "", "organization id")
	add.Flags().StringVar(&name, "name", "", "branch name")
	add.Flags().StringVar(&code, "code", "", "branch code; the first two letters prefix LR numbers")
	_ = add.MarkFlagRequired("org")
	_ = add.MarkFlagRequired("name")

	branch.AddCommand(add)
	return branch
}
