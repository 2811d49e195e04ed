/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/utils"
	"github.com/spf13/cobra"
)

// hashPasswordCmd represents the hash-password command
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Generate a bcrypt hash for account configuration",
	Long: `Generate a bcrypt hash of the given password, suitable for the
auth.password_hash config key or the QMS_AUTH_PASSWORDHASH environment
variable. The same hash backs both login and electronic signature
credential checks.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := utils.HashPassword(args[0])
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
