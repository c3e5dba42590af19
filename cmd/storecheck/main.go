package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"prevently/db"
	"prevently/internal/config"
	"prevently/internal/docstore"
	"prevently/internal/model"
	"prevently/internal/repository"
	"prevently/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const sampleLimit = 5

var backend string

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "storecheck",
		Short: "Inspect the document store the API reads from",
	}

	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "store backend (firestore, postgres, sqlite); defaults to STORE_BACKEND")

	rootCmd.AddCommand(collectionsCmd())
	rootCmd.AddCommand(domainsCmd())
	rootCmd.AddCommand(analyticsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (docstore.Store, config.Config, error) {
	cfg := config.Load()
	if backend != "" {
		cfg.Store.Backend = backend
	}
	store, err := db.OpenStore(ctx, cfg)
	return store, cfg, err
}

func collectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List collections and sample the news and domains collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			return printCollections(cmd.Context(), store, cmd.OutOrStdout())
		},
	}
}

func domainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "Print every domain id and name",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			return printDomains(cmd.Context(), repository.NewDomainRepository(store), cmd.OutOrStdout())
		},
	}
}

func analyticsCmd() *cobra.Command {
	var days int
	var domain string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Run the daily sentiment aggregation against the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			svc := service.NewAnalyticsService(repository.NewArticleRepository(store), cfg.Location())
			return printAnalytics(cmd.Context(), svc, days, domain, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&days, "days", service.DefaultAnalyticsDays, "window size in days")
	cmd.Flags().StringVar(&domain, "domain", "", "restrict to one domain")
	return cmd
}

func printCollections(ctx context.Context, store docstore.Store, out io.Writer) error {
	names, err := store.Collections(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Collections (%d):\n", len(names))
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}

	for _, name := range []string{model.NewsCollection, model.DomainsCollection} {
		if !slices.Contains(names, name) {
			fmt.Fprintf(out, "%s: missing\n", name)
			continue
		}
		docs, err := store.Query(ctx, docstore.NewQuery(name).WithLimit(sampleLimit))
		if err != nil {
			return fmt.Errorf("sample %s: %w", name, err)
		}
		fmt.Fprintf(out, "%s: %d documents sampled (limit %d)\n", name, len(docs), sampleLimit)
	}

	return nil
}

func printDomains(ctx context.Context, domains *repository.DomainRepository, out io.Writer) error {
	all, err := domains.GetAllDomains(ctx)
	if err != nil {
		return err
	}

	for _, d := range all {
		fmt.Fprintf(out, "%s\t%s\n", d.ID, d.Name)
	}
	fmt.Fprintf(out, "%d domains\n", len(all))
	return nil
}

func printAnalytics(ctx context.Context, svc *service.AnalyticsService, days int, domain string, out io.Writer) error {
	series, err := svc.Daily(ctx, days, domain)
	if err != nil {
		return err
	}

	for _, d := range series {
		fmt.Fprintf(out, "%s\t%.3f\t%d\n", d.Date, d.Sentiment, d.ArticleCount)
	}
	fmt.Fprintf(out, "%d days with articles\n", len(series))
	return nil
}
