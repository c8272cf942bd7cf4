package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/wellwatch/internal/logging"
	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/recommend"
	"github.com/spf13/cobra"
)

var (
	recommendLimit int
	recommendType  string
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"suggest"},
	Short:   "Generate ranked recommendations",
	Long: `Analyze tasks, habits, wellness check-ins and goals to generate
actionable recommendations. Recommendations are ordered by confidence,
highest first. The latest run is saved so 'wellwatch watch' and the MCP
server can compare against it.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 0, "Maximum number of recommendations to show (default from config)")
	recommendCmd.Flags().StringVar(&recommendType, "type", "", "Filter by type (habit, task, goal, wellness, productivity)")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	var filter recommend.Type
	if recommendType != "" {
		filter = recommend.Type(strings.ToLower(recommendType))
		if !validType(filter) {
			return fmt.Errorf("invalid type %q (want habit, task, goal, wellness or productivity)", recommendType)
		}
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	snap, err := e.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	recs, err := recommend.NewEngine().Run(snap, e.now())
	if err != nil {
		return err
	}
	if err := e.db.ReplaceRecommendations(recs); err != nil {
		return fmt.Errorf("saving recommendations: %w", err)
	}
	logging.FromContext(cmd.Context()).Debug("recommendations generated", "count", len(recs))

	if filter != "" {
		recs = recommend.FilterByType(recs, filter)
	}
	limit := recommendLimit
	if !cmd.Flags().Changed("limit") {
		limit = e.cfg.Recommend.Limit
	}
	recs = recommend.Limit(recs, limit)

	out := cmd.OutOrStdout()
	if flagJSON {
		if recs == nil {
			recs = []recommend.Recommendation{}
		}
		return writeJSON(out, recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(out, output.Section("Recommendations"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, " Nothing to recommend right now. Keep it up!")
		return nil
	}

	fmt.Fprintln(out, output.Section("Recommendations"))
	fmt.Fprintln(out)
	for i, r := range recs {
		label := "[" + strings.ToUpper(string(r.Priority)) + "]"
		fmt.Fprintf(out, " #%d %s %s\n", i+1, stylePriorityLabel(r.Priority, label), output.StyleBold.Render(r.Title))
		fmt.Fprintf(out, "    Confidence: %d%%  |  Category: %s\n", r.Confidence, output.CategoryLabel(r.Category))
		fmt.Fprintf(out, "    %s\n", r.Description)
		if r.Action != "" {
			fmt.Fprintf(out, "    %s %s\n", output.StyleAccent.Render("→"), r.Action)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func validType(t recommend.Type) bool {
	for _, known := range recommend.Types {
		if t == known {
			return true
		}
	}
	return false
}
