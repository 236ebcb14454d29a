package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/motormarket/adminctl"
	"github.com/motormarket/adminctl/cmd/adminctl/config"
)

var (
	articlePage        int
	articleLimit       int
	articleSearch      string
	articleFrom        string
	articleTo          string
	articleTitle       string
	articleDescription string
	articleImagePath   string
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Manage marketplace articles",
}

func articleState() *adminctl.ArticleState {
	return adminctl.NewArticleState(client, config.Get().API.BulkDeleteConcurrency)
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := articleState()
		filter := adminctl.ArticleFilter{
			Search:   articleSearch,
			FromDate: articleFrom,
			ToDate:   articleTo,
		}
		if err := state.Fetch(cmd.Context(), articlePage, articleLimit, filter); err != nil {
			return err
		}
		paging := state.Pagination()
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCREATED")
		for _, a := range state.Items() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Title, a.CreatedAt)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("page %d/%d, %d articles total\n", paging.Page, paging.TotalPages, paging.TotalDocs)
		return nil
	},
}

var articlesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an article",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := adminctl.ArticleDraft{
			Title:       articleTitle,
			Description: articleDescription,
		}
		if articleImagePath != "" {
			f, err := os.Open(articleImagePath)
			if err != nil {
				return err
			}
			defer f.Close()
			draft.Image = &adminctl.ImageFile{Name: filepath.Base(articleImagePath), Content: f}
		}
		if err := articleState().Create(cmd.Context(), draft); err != nil {
			return err
		}
		fmt.Println("Article created")
		return nil
	},
}

var articlesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an article's title and description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := articleState().Update(cmd.Context(), args[0], articleTitle, articleDescription); err != nil {
			return err
		}
		fmt.Println("Article updated")
		return nil
	},
}

var articlesDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more articles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := articleState()
		// The cached page scopes bulk deletion, so load it first.
		if err := state.Fetch(cmd.Context(), 1, 0, adminctl.ArticleFilter{}); err != nil {
			return err
		}
		if len(args) == 1 {
			if err := state.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Article deleted")
			return nil
		}
		result, err := state.DeleteMultiple(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d article(s)\n", len(result.Succeeded))
		for _, f := range result.Failed {
			fmt.Printf("failed to delete %s: %s\n", f.ID, adminctl.ErrorMessage(f.Err))
		}
		return nil
	},
}

func init() {
	articlesListCmd.Flags().IntVar(&articlePage, "page", 1, "page to fetch")
	articlesListCmd.Flags().IntVar(&articleLimit, "limit", 10, "page size")
	articlesListCmd.Flags().StringVar(&articleSearch, "search", "", "search term")
	articlesListCmd.Flags().StringVar(&articleFrom, "from", "", "only articles created after this date")
	articlesListCmd.Flags().StringVar(&articleTo, "to", "", "only articles created before this date")

	articlesCreateCmd.Flags().StringVar(&articleTitle, "title", "", "article title")
	articlesCreateCmd.Flags().StringVar(&articleDescription, "description", "", "article body")
	articlesCreateCmd.Flags().StringVar(&articleImagePath, "image", "", "path to a cover image")
	_ = articlesCreateCmd.MarkFlagRequired("title")
	_ = articlesCreateCmd.MarkFlagRequired("description")

	articlesUpdateCmd.Flags().StringVar(&articleTitle, "title", "", "new title")
	articlesUpdateCmd.Flags().StringVar(&articleDescription, "description", "", "new body")
	_ = articlesUpdateCmd.MarkFlagRequired("title")
	_ = articlesUpdateCmd.MarkFlagRequired("description")

	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesCreateCmd)
	articlesCmd.AddCommand(articlesUpdateCmd)
	articlesCmd.AddCommand(articlesDeleteCmd)
	rootCmd.AddCommand(articlesCmd)
}
