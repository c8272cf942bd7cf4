package app

import (
	"os"

	"github.com/blackwell-systems/wellwatch/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing streaks and recommendations",
	Long: `Start a Model Context Protocol stdio server that an assistant can
query. The server exposes these tools:

  get_streaks          Current and best streak for every habit
  get_recommendations  Ranked recommendations (optional limit and type)
  get_today            Today's habit and task completion, this week and wellness averages

Add to an MCP client configuration:
  {"mcpServers":{"wellwatch":{"command":"wellwatch","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	srv := mcp.NewServer(e.db, mcp.Options{
		Location:     e.loc,
		DefaultLimit: e.cfg.Recommend.Limit,
		Now:          clock,
	})
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
