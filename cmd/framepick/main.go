package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"framepick/adapters/clusterfile"
	"framepick/adapters/postgres"
	"framepick/adapters/report"
	"framepick/adapters/seriesfile"
	"framepick/adapters/tablewriter"
	"framepick/api"
	"framepick/app"
	"framepick/internal/config"
	"framepick/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "framepick",
		Short: "Trajectory frame selection from distance series and cluster summaries",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var clusterPath string
	var names []string
	var weights []float64
	var outTable string
	var outXLSX string
	var outMarkdown string

	cmd := &cobra.Command{
		Use:   "analyze [series-files...]",
		Short: "Score aligned series and pick the best frame",
		Long: `Align per-criterion series files on their common frames, score each
frame, pick the best one, and reconcile the pick against an externally
produced cluster summary.

Example: framepick analyze cat_dist.dat nuc_dist.dat leav_dist.dat --cluster clusters.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), analyzeOptions{
				seriesPaths: args,
				clusterPath: clusterPath,
				names:       names,
				weights:     weights,
				outTable:    outTable,
				outXLSX:     outXLSX,
				outMarkdown: outMarkdown,
			})
		},
	}

	cmd.Flags().StringVar(&clusterPath, "cluster", "", "Cluster summary file (required)")
	cmd.Flags().StringSliceVar(&names, "names", nil, "Series names overriding the file-derived ones")
	cmd.Flags().Float64SliceVar(&weights, "weights", nil, "Per-series weights (default: equal weights)")
	cmd.Flags().StringVar(&outTable, "out-table", "", "Write the aligned frame table as TSV to this path")
	cmd.Flags().StringVar(&outXLSX, "xlsx", "", "Write the aligned frame table as XLSX to this path")
	cmd.Flags().StringVar(&outMarkdown, "markdown", "", "Write the run report as Markdown to this path")
	cmd.MarkFlagRequired("cluster")

	return cmd
}

type analyzeOptions struct {
	seriesPaths []string
	clusterPath string
	names       []string
	weights     []float64
	outTable    string
	outXLSX     string
	outMarkdown string
}

func runAnalyze(ctx context.Context, opts analyzeOptions) error {
	svc := app.NewAnalysisService(seriesfile.NewLoader(), clusterfile.NewReader(), nil)

	result, err := svc.Run(ctx, app.AnalysisRequest{
		SeriesPaths: opts.seriesPaths,
		SeriesNames: opts.names,
		ClusterPath: opts.clusterPath,
		Weights:     opts.weights,
	})
	if err != nil {
		return err
	}

	record := result.ToRecord()
	fmt.Print(report.Text(record))

	if opts.outTable != "" {
		if err := tablewriter.WriteTSVFile(opts.outTable, result.Table); err != nil {
			return err
		}
		fmt.Printf("Frame table written to %s\n", opts.outTable)
	}
	if opts.outXLSX != "" {
		if err := tablewriter.WriteXLSX(opts.outXLSX, result.Table); err != nil {
			return err
		}
		fmt.Printf("Frame table written to %s\n", opts.outXLSX)
	}
	if opts.outMarkdown != "" {
		if err := os.WriteFile(opts.outMarkdown, []byte(report.Markdown(record)), 0o644); err != nil {
			return fmt.Errorf("writing markdown report: %w", err)
		}
		fmt.Printf("Report written to %s\n", opts.outMarkdown)
	}

	return nil
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analysis runs over HTTP",
		Long: `Start the HTTP API. When DATABASE_URL is set, completed runs are
archived to PostgreSQL and browsable under /runs; without it the API is
stateless and only POST /runs is useful.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $ADDR or :8080)")

	return cmd
}

func runServe(ctx context.Context, addr string) error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	if addr == "" {
		addr = cfg.Server.Addr
	}

	var archive ports.ReportArchive
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connecting to archive database: %w", err)
		}
		defer db.Close()

		repo := postgres.NewReportRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		archive = repo
		log.Printf("[framepick] run archive enabled")
	} else {
		log.Printf("[framepick] DATABASE_URL not set, run archive disabled")
	}

	svc := app.NewAnalysisService(seriesfile.NewLoader(), clusterfile.NewReader(), archive)
	server := api.NewServer(svc, archive)

	log.Printf("[framepick] listening on %s", addr)
	return http.ListenAndServe(addr, server)
}
