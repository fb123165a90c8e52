package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the key table",
	Long:  `Loads the key table from the configured source and prints every key with its address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(false)
		if err != nil {
			return err
		}
		table, err := svc.loadTable(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tADDRESS")
		for _, e := range table.Entries() {
			fmt.Fprintf(w, "%s\t%s\n", e.Key, e.Reference.Address)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d keys from %s\n", table.Len(), svc.tableSource())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(keysCmd)
}
