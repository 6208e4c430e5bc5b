package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wtorkanorka/BlogSynergy/blog/services"
	"github.com/wtorkanorka/BlogSynergy/errors"
)

func init() {
	IndexCommand.AddCommand(&IndexRebuildCommand)
	RootCmd.AddCommand(&IndexCommand)
}

var IndexCommand = cobra.Command{
	Use:   "index",
	Short: "Manage the search index",
	Long:  "Manage the search index",
}

var IndexRebuildCommand = cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index",
	Long:  "Drop the search index and index every stored post again",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Bleve.Store == "" {
			return errors.New("no bleve store configured, the in-memory index is rebuilt on start")
		}

		st, closeStores, err := createStores(cmd.Context(), cfg)
		defer closeStores()
		if err != nil {
			return err
		}

		if err := os.RemoveAll(cfg.Bleve.Store); err != nil {
			return errors.New("could not remove the index", errors.WithCause(err))
		}

		index, closeIndex, err := createIndex(cfg.Bleve.Store)
		defer closeIndex()
		if err != nil {
			return err
		}

		subscriptionService := services.NewSubscriptionService(st.subscriptions)
		n, err := services.NewSearchService(st.posts, index, st.tags, subscriptionService).Reindex(cmd.Context())
		if err != nil {
			return err
		}

		logger.Printf("%d posts indexed", n)
		return nil
	},
}
