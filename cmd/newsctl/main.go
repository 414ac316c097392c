package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amiyamandal-dev/newsdesk/internal/config"
	"github.com/amiyamandal-dev/newsdesk/internal/repository/sqlite"
	"github.com/amiyamandal-dev/newsdesk/internal/search"
	"github.com/amiyamandal-dev/newsdesk/internal/service"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

var (
	configFile string
	noIndex    bool
)

// app bundles what every subcommand opens
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *sqlite.DB
	index    *search.BleveIndex
	articles *service.ArticleService
	search   *service.SearchService
}

// openApp loads config and opens the database. The search index is only
// opened when withIndex is set and search is enabled; bleve holds a file
// lock, so index-touching commands must run while the server is stopped.
func openApp(withIndex bool) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := sqlite.New(cfg.Database.Path, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &app{cfg: cfg, log: log, db: db}

	var (
		searchIndex search.Index
		indexer     service.SearchIndexer
	)
	if withIndex && cfg.Search.Enabled {
		a.index, err = search.Open(cfg.Search.IndexPath, log)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to open search index: %w", err)
		}
		searchIndex = a.index
		indexer = a.index
	}

	articleRepo := sqlite.NewArticleRepo(db)
	a.articles = service.NewArticleService(articleRepo, sqlite.NewCategoryRepo(db), sqlite.NewTagRepo(db), indexer, log)
	a.search = service.NewSearchService(searchIndex, articleRepo, log)
	return a, nil
}

func (a *app) Close() {
	if a.index != nil {
		a.index.Close()
	}
	a.db.Close()
	a.log.Sync()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}

var rootCmd = &cobra.Command{
	Use:          "newsctl",
	Short:        "newsctl - administer a newsdesk site",
	SilenceUsage: true,
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		category, err := a.articles.CreateCategory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", category.ID, category.Name)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		categories, err := a.articles.Categories(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
		return w.Flush()
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		tag, err := a.articles.CreateTag(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", tag.ID, tag.Name)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		tags, err := a.articles.Tags(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, t := range tags {
			fmt.Fprintf(w, "%d\t%s\n", t.ID, t.Name)
		}
		return w.Flush()
	},
}

var tagAttachCmd = &cobra.Command{
	Use:   "attach [article-id] [tag-id]",
	Short: "Tag an article",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		articleID, err := parseID(args[0], "article")
		if err != nil {
			return err
		}
		tagID, err := parseID(args[1], "tag")
		if err != nil {
			return err
		}

		a, err := openApp(!noIndex)
		if err != nil {
			return err
		}
		defer a.Close()

		article, err := a.articles.AttachTag(cmd.Context(), articleID, tagID)
		if err != nil {
			return err
		}
		a.log.Info("Tag attached", "article_id", article.ID, "tag_id", tagID, "tags", len(article.Tags))
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.search.Enabled() {
			return fmt.Errorf("search is disabled in config")
		}

		n, err := a.search.Reindex(cmd.Context())
		if err != nil {
			return err
		}
		stats, err := a.search.GetIndexStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d articles, %v documents in index\n", n, stats["total_documents"])
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	tagAttachCmd.Flags().BoolVar(&noIndex, "no-index", false, "skip refreshing the search document")

	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd)
	tagCmd.AddCommand(tagAddCmd, tagListCmd, tagAttachCmd)
	rootCmd.AddCommand(categoryCmd, tagCmd, reindexCmd)

	ctx, cancel := signalContext()
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
