package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/client/api"
	"github.com/spf13/cobra"
)

func (a *App) newNewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Read and manage news articles",
	}
	cmd.AddCommand(
		a.newNewsListCmd(),
		a.newNewsGetCmd(),
		a.newNewsCreateCmd(),
		a.newNewsUpdateCmd(),
		a.newNewsDeleteCmd(),
	)
	return cmd
}

func parseArticleID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid article id %q", s)
	}
	return id, nil
}

func (a *App) newNewsListCmd() *cobra.Command {
	var skip, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.api.ListArticles(cmd.Context(), skip, limit)
			if err != nil {
				return explain(err)
			}
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No articles")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tUPDATED")
			for _, art := range list {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", art.ID, art.Title, art.OwnerID, art.UpdatedAt.Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "number of articles to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of articles (server default when 0)")
	return cmd
}

func (a *App) printArticle(art *api.Article) {
	fmt.Fprintf(a.out, "#%d %s\nowner %d, updated %s\n\n%s\n",
		art.ID, art.Title, art.OwnerID, art.UpdatedAt.Format(time.DateTime), art.Content)
}

func (a *App) newNewsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArticleID(args[0])
			if err != nil {
				return err
			}
			art, err := a.api.GetArticle(cmd.Context(), id)
			if err != nil {
				return explain(err)
			}
			a.printArticle(art)
			return nil
		},
	}
}

func (a *App) newNewsCreateCmd() *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish an article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.tokens.Load()
			if err != nil {
				return err
			}
			if title == "" {
				if title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
					return err
				}
			}
			if content == "" {
				if content, err = getMultiline(a.reader, "Content", a.out); err != nil {
					return err
				}
			}

			art, err := a.api.CreateArticle(cmd.Context(), token, title, content)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "Created article %d\n", art.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "article title")
	cmd.Flags().StringVar(&content, "content", "", "article body (prompted when empty)")
	return cmd
}

func (a *App) newNewsUpdateCmd() *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an article you own (or any article, as an administrator)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArticleID(args[0])
			if err != nil {
				return err
			}
			token, err := a.tokens.Load()
			if err != nil {
				return err
			}

			// Unset fields keep their current value.
			if title == "" || content == "" {
				cur, err := a.api.GetArticle(cmd.Context(), id)
				if err != nil {
					return explain(err)
				}
				if title == "" {
					title = cur.Title
				}
				if content == "" {
					content = cur.Content
				}
			}

			art, err := a.api.UpdateArticle(cmd.Context(), token, id, title, content)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "Updated article %d\n", art.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new body")
	return cmd
}

func (a *App) newNewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an article you own (or any article, as an administrator)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArticleID(args[0])
			if err != nil {
				return err
			}
			token, err := a.tokens.Load()
			if err != nil {
				return err
			}
			if err := a.api.DeleteArticle(cmd.Context(), token, id); err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "Deleted article %d\n", id)
			return nil
		},
	}
}
