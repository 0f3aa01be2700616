package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &clientOptions{}

	rootCmd := &cobra.Command{
		Use:           "costledger-cli",
		Short:         "CostLedger CLI tool",
		Long:          `A command line interface for operating a CostLedger server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the CostLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		reconcileCmd(opts),
		balanceCmd(opts),
		batchesCmd(opts),
		txCmd(opts),
	)

	return rootCmd
}

func reconcileCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Check balances and inventory against the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report struct {
				Consistent        bool `json:"consistent"`
				TotalHolders      int  `json:"total_holders"`
				ReconciledHolders int  `json:"reconciled_holders"`
				ProductsChecked   int  `json:"products_checked"`
				Discrepancies     []struct {
					HolderID   string `json:"holder_id"`
					HolderKind string `json:"holder_kind"`
					Difference string `json:"difference"`
				} `json:"discrepancies"`
				InventoryIssues []struct {
					ProductID string `json:"product_id"`
				} `json:"inventory_issues"`
			}
			if err := opts.client().do(cmd.Context(), "GET", "/api/v1/ledger/reconcile", nil, &report); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Holders: %d/%d reconciled\n", report.ReconciledHolders, report.TotalHolders)
			fmt.Fprintf(out, "Products checked: %d\n", report.ProductsChecked)
			for _, d := range report.Discrepancies {
				fmt.Fprintf(out, "  %-12s %-28s off by %s\n", d.HolderKind, d.HolderID, d.Difference)
			}
			for _, p := range report.InventoryIssues {
				fmt.Fprintf(out, "  inventory    %s\n", p.ProductID)
			}

			if !report.Consistent {
				return fmt.Errorf("ledger is inconsistent")
			}
			fmt.Fprintln(out, "Ledger is consistent")
			return nil
		},
	}
}

func balanceCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Balance string `json:"balance"`
			}
			if err := opts.client().do(cmd.Context(), "GET", "/api/v1/accounts/"+args[0]+"/balance", nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Balance)
			return nil
		},
	}
}

type batchRow struct {
	ID                string    `json:"id"`
	AvailableQuantity string    `json:"available_quantity"`
	PurchasePrice     string    `json:"purchase_price"`
	PurchaseDate      time.Time `json:"purchase_date"`
	Status            string    `json:"status"`
}

func batchesCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches <product-id>",
		Short: "List a product's batches in consumption order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Batches []batchRow `json:"batches"`
			}
			if err := opts.client().do(cmd.Context(), "GET", "/api/v1/products/"+args[0]+"/batches", nil, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-28s %-10s %10s %10s %10s\n", "BATCH", "DATE", "AVAILABLE", "PRICE", "STATUS")
			for _, b := range resp.Batches {
				fmt.Fprintf(out, "%-28s %-10s %10s %10s %10s\n",
					truncate(b.ID, 28), b.PurchaseDate.Format(time.DateOnly), b.AvailableQuantity, b.PurchasePrice, b.Status)
			}
			return nil
		},
	}

	var asOf string
	expireCmd := &cobra.Command{
		Use:   "expire",
		Short: "Expire batches past their expiry date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if asOf != "" {
				t, err := time.Parse(time.RFC3339, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				body["as_of"] = t
			}

			var resp struct {
				Expired int `json:"expired"`
			}
			if err := opts.client().do(cmd.Context(), "POST", "/api/v1/products/batches/expire", body, &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expired %d batches\n", resp.Expired)
			return nil
		},
	}
	expireCmd.Flags().StringVar(&asOf, "as-of", "", "Cutoff time (RFC3339), defaults to now")
	cmd.AddCommand(expireCmd)

	return cmd
}

func txCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction and reverse its effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().do(cmd.Context(), "DELETE", "/api/v1/transactions/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			if err := opts.client().do(cmd.Context(), "GET", "/api/v1/transactions/"+args[0], nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	})

	return cmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
