package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paypal-gateway",
	Short: "PayPal checkout gateway service",
	Long:  "A thin PayPal integration service: checkout order creation, capture, and payment record persistence.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
