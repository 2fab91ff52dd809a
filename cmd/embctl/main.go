package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "embctl",
		Short:   "Operations for the school site backend",
		Version: Version,
	}

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(smokeCmd())
	rootCmd.AddCommand(adminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
