package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"image-admin/core/config"
	"image-admin/core/database"
	"image-admin/core/logger"
	"image-admin/core/storage"
	"image-admin/core/utils"
	"image-admin/feature/images"
	"image-admin/feature/images/refindex"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for images subcommands
	orphanFolder string
	orphanLimit  int
	orphanAll    bool
	cleanupIDs   string
	yesConfirm   bool
	reportKind   string
	reportCSV    string
)

// imagesCmd is the parent command for all image administration operations.
var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Administer uploaded images (orphans, cleanup, reports)",
	Long: `Administer the uploaded image catalog.
Detects orphaned uploads, deletes them after confirmation, and reports on
storage usage and optimization candidates.`,
}

// orphansCmd scans for orphaned images and prints them.
var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List images with no database reference",
	Long: `Scan the remote catalog for images no restaurant, menu, menu item or
profile references.

Examples:
  # First page of orphans across all folders
  images orphans

  # Walk the full menus folder
  images orphans --type menus --all`,
	RunE: runOrphans,
}

// cleanupCmd deletes verified orphans.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete orphaned images (re-verified before deletion)",
	Long: `Delete the given images after re-verifying that no database row
references them. Ids found referenced at verification time are skipped.

Examples:
  # Interactive confirmation
  images cleanup --ids menus/stale-1,menus/stale-2

  # Non-interactive
  images cleanup --ids menus/stale-1 --yes`,
	RunE: runCleanup,
}

// reportCmd prints or exports an admin report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a usage, optimization or summary report",
	Long: `Generate an admin report and print it as a table, or export the
optimization report as CSV.

Examples:
  images report --kind summary
  images report --kind optimization --csv candidates.csv`,
	RunE: runReport,
}

func init() {
	orphansCmd.Flags().StringVar(&orphanFolder, "type", "", "Folder to scan (e.g. 'menus'); empty scans everything")
	orphansCmd.Flags().IntVar(&orphanLimit, "limit", 50, "Page size per scan request")
	orphansCmd.Flags().BoolVar(&orphanAll, "all", false, "Follow the cursor until the catalog is exhausted")

	cleanupCmd.Flags().StringVar(&cleanupIDs, "ids", "", "Comma-separated public ids to delete (required)")
	cleanupCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletion (non-interactive)")
	_ = cleanupCmd.MarkFlagRequired("ids")

	reportCmd.Flags().StringVar(&reportKind, "kind", "summary", "Report kind: usage | optimization | summary")
	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "Write the report as CSV to this path (optimization only)")

	imagesCmd.AddCommand(orphansCmd)
	imagesCmd.AddCommand(cleanupCmd)
	imagesCmd.AddCommand(reportCmd)
	RootCmd.AddCommand(imagesCmd)
}

// buildService wires a service from configuration the same way the server
// does, minus the HTTP stack.
func buildService() (*images.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var checkers []refindex.Checker
	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed, every asset counts as referenced", zap.Error(err))
	} else {
		checkers = refindex.DefaultCheckers(db)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	refs := refindex.New(l, cfg.Images.StrictChecks, checkers...)
	svc := images.NewService(client, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL, l, refs, cfg.Images)
	return svc, l, nil
}

func runOrphans(cmd *cobra.Command, args []string) error {
	svc, l, err := buildService()
	if err != nil {
		return err
	}
	ctx := context.Background()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Public ID", "Folder", "Format", "Size", "Last Modified"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	total := 0
	cursor := ""
	for {
		page, err := svc.FindOrphans(ctx, images.ScanFilter{
			Folder:   orphanFolder,
			PageSize: orphanLimit,
			Cursor:   cursor,
		})
		if err != nil {
			return fmt.Errorf("orphan scan failed: %w", err)
		}

		for _, candidate := range page.OrphanedImages {
			asset := candidate.Asset
			table.Append([]string{
				asset.PublicID,
				asset.Folder,
				asset.Format,
				utils.HumanBytes(asset.Bytes),
				asset.CreatedAt.Format("2006-01-02 15:04"),
			})
			total++
		}

		if !orphanAll || !page.HasMore {
			if page.HasMore {
				l.Info("More pages available, re-run with --all or pass the cursor",
					zap.String("cursor", page.NextCursor))
			}
			break
		}
		cursor = page.NextCursor
	}

	if total == 0 {
		fmt.Println("No orphaned images found.")
		return nil
	}

	table.Render()
	fmt.Printf("\n%d orphaned image(s). Delete with: images cleanup --ids <id,...>\n", total)
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ids := splitIDs(cleanupIDs)
	if len(ids) == 0 {
		return fmt.Errorf("--ids must name at least one public id")
	}

	svc, l, err := buildService()
	if err != nil {
		return err
	}

	fmt.Printf("About to delete %d image(s):\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  - %s\n", id)
	}
	if !confirmDeletion() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	summary, err := svc.Cleanup(context.Background(), ids, true)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	l.Info("Cleanup finished",
		zap.Int("requested", summary.Requested),
		zap.Int("safe_to_delete", summary.SafeToDelete),
		zap.Int("deleted", summary.ActuallyDeleted),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Int("errors", len(summary.Errors)),
	)
	for _, id := range summary.Skipped {
		l.Warn("Skipped referenced image", zap.String("public_id", id))
	}
	for _, item := range summary.Errors {
		l.Error("Deletion failed", zap.String("public_id", item.PublicID), zap.String("error", item.Error))
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService()
	if err != nil {
		return err
	}
	ctx := context.Background()

	report, err := svc.GenerateReport(ctx, images.ReportKind(reportKind))
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	if reportCSV != "" {
		f, err := os.Create(reportCSV)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", reportCSV, err)
		}
		defer f.Close()
		if err := images.WriteCSV(f, report); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", reportCSV)
		return nil
	}

	switch r := report.(type) {
	case *images.SummaryReport:
		printUsage(r.Usage)
		fmt.Println()
		printCategories(r.Categories)
	case images.UsageReport:
		printUsage(r)
	case *images.OptimizationReport:
		printOptimization(r)
	default:
		// Fall back to JSON for anything without a table form.
		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
	}
	return nil
}

func printUsage(usage images.UsageReport) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.Append([]string{"Objects", fmt.Sprintf("%d", usage.ObjectCount)})
	table.Append([]string{"Storage used", usage.StorageUsedHuman})
	table.Append([]string{"Storage limit", utils.HumanBytes(usage.StorageLimitBytes)})
	table.Append([]string{"Used", fmt.Sprintf("%.1f%%", usage.StorageUsedPercent)})
	table.Render()
}

func printCategories(categories []images.CategoryStat) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Folder", "Objects", "Size", "DB References"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, cat := range categories {
		table.Append([]string{
			cat.Folder,
			fmt.Sprintf("%d", cat.InventoryCount),
			utils.HumanBytes(cat.InventoryBytes),
			fmt.Sprintf("%d", cat.ReferencedCount),
		})
	}
	table.Render()
}

func printOptimization(report *images.OptimizationReport) {
	fmt.Printf("%d candidate(s) above %s, %s total\n\n",
		report.CandidateCount,
		utils.HumanBytes(report.ThresholdBytes),
		report.CandidateBytesHuman,
	)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Public ID", "Folder", "Format", "Size"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, asset := range report.Candidates {
		table.Append([]string{asset.PublicID, asset.Folder, asset.Format, utils.HumanBytes(asset.Bytes)})
	}
	table.Render()
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

// confirmDeletion prompts the user for confirmation or uses the --yes flag.
func confirmDeletion() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm deletion: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
