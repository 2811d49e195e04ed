/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qms-gin",
	Short: "Pharmaceutical quality management API server",
	Long: `QMS Gin is a REST API server for pharmaceutical quality management
records: deviations, CAPA, audits, risk register, OOS, recalls, change
control, stability, inventory, LIMS samples, certificates of analysis,
in-process controls and batch manufacturing records. Every mutating
operation is captured in a tamper-evident audit trail.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd 返回根命令（用于测试）
func GetRootCmd() *cobra.Command {
	return rootCmd
}
