package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag    string
	cookieFlag string
	rootCmd    = &cobra.Command{
		Use:   "bucketctl",
		Short: "CLI client for the Bucket Buddy REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:3000", "Bucket service base URL")
	rootCmd.PersistentFlags().StringVarP(&cookieFlag, "cookie", "c", "", "Session cookie value (not needed against AUTH_ENABLED=false servers)")

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Check the service is answering",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newClient().get("/ping")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(body))
			return nil
		},
	}
	rootCmd.AddCommand(pingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
