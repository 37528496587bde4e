package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	itemsCmd := &cobra.Command{Use: "items", Short: "Bucket-list item operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your items",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := newClient().get("/results")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	itemsCmd.AddCommand(listCmd)

	var title, category, priority, target string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || category == "" || priority == "" {
				return fmt.Errorf("--title, --category and --priority required")
			}
			payload := map[string]interface{}{
				"title":    title,
				"category": category,
				"priority": priority,
			}
			if target != "" {
				payload["targetDate"] = target
			}
			data, err := newClient().post("/results", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&title, "title", "t", "", "Item title (required)")
	addCmd.Flags().StringVar(&category, "category", "", "Item category (required)")
	addCmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: low, medium or high (required)")
	addCmd.Flags().StringVar(&target, "target", "", "Target date, YYYY-MM-DD")
	itemsCmd.AddCommand(addCmd)

	completeCmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an item completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := newClient().put("/results/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	itemsCmd.AddCommand(completeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := newClient().delete("/results/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	itemsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(itemsCmd)
}
