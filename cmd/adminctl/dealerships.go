package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/motormarket/adminctl"
)

var (
	dealershipName        string
	dealershipDescription string
	dealershipImagePath   string
)

var dealershipsCmd = &cobra.Command{
	Use:   "dealerships",
	Short: "Manage auto-dealership listings",
}

var dealershipsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dealerships",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := adminctl.NewDealershipState(client)
		if err := state.Fetch(cmd.Context()); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, d := range state.Items() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Name, d.Description)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d dealerships total\n", state.Pagination().TotalDocs)
		return nil
	},
}

var dealershipsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a dealership listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := adminctl.DealershipDraft{
			Title:       dealershipName,
			Description: dealershipDescription,
		}
		if dealershipImagePath != "" {
			f, err := os.Open(dealershipImagePath)
			if err != nil {
				return err
			}
			defer f.Close()
			draft.Image = &adminctl.ImageFile{Name: filepath.Base(dealershipImagePath), Content: f}
		}
		if err := adminctl.NewDealershipState(client).Create(cmd.Context(), draft); err != nil {
			return err
		}
		fmt.Println("Dealership created")
		return nil
	},
}

var dealershipsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more dealership listings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := adminctl.NewDealershipState(client)
		if err := state.Fetch(cmd.Context()); err != nil {
			return err
		}
		if len(args) == 1 {
			if err := state.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Dealership deleted")
			return nil
		}
		result, err := state.DeleteMultiple(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d dealership(s)\n", len(result.Succeeded))
		for _, f := range result.Failed {
			fmt.Printf("failed to delete %s: %s\n", f.ID, adminctl.ErrorMessage(f.Err))
		}
		return nil
	},
}

func init() {
	dealershipsCreateCmd.Flags().StringVar(&dealershipName, "name", "", "dealership name")
	dealershipsCreateCmd.Flags().StringVar(&dealershipDescription, "description", "", "dealership description")
	dealershipsCreateCmd.Flags().StringVar(&dealershipImagePath, "image", "", "path to a logo/cover image")
	_ = dealershipsCreateCmd.MarkFlagRequired("name")
	_ = dealershipsCreateCmd.MarkFlagRequired("description")

	dealershipsCmd.AddCommand(dealershipsListCmd)
	dealershipsCmd.AddCommand(dealershipsCreateCmd)
	dealershipsCmd.AddCommand(dealershipsDeleteCmd)
	rootCmd.AddCommand(dealershipsCmd)
}
