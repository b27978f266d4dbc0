package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	apierrors "github.com/diogo/kioskfeed/internal/errors"
	"github.com/diogo/kioskfeed/internal/render"
)

var (
	fetchTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	fetchIndexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	fetchAuthorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true)
	fetchDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

// NewFetchCmd creates the one-shot fetch command
func NewFetchCmd(deps *Dependencies, flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [page-url]",
		Short: "Fetch the feed once and print it",
		Long:  `Fetch the channel feed once and print its title and messages. Useful to check the server address and channel id before starting the display.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(flags, args)
			if err != nil {
				return err
			}
			if cfg.Chat == "" {
				return apierrors.NewMissingChatError()
			}

			fetcher, err := deps.NewFetcher(cfg.ServerURL, cfg.RequestTimeout)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			result, err := fetcher.FetchFeed(ctx, cfg.Chat)
			if err != nil {
				return err
			}

			feed := result.Feed
			title := feed.Title
			if title == "" {
				title = cfg.DefaultTitle
			}
			fmt.Fprintln(deps.Out, fetchTitleStyle.Render(title))
			fmt.Fprintln(deps.Out, fetchDimStyle.Render(fmt.Sprintf("%d messages", feed.Len())))

			for i, msg := range feed.Messages {
				fmt.Fprintln(deps.Out)
				fmt.Fprintf(deps.Out, "%s %s %s\n",
					fetchIndexStyle.Render(fmt.Sprintf("[%d]", i+1)),
					fetchAuthorStyle.Render(msg.Author),
					fetchDimStyle.Render(msg.Timestamp))
				fmt.Fprintln(deps.Out, strings.TrimRight(render.Content(msg.Content, lipgloss.NewStyle(), render.DefaultOptions().WithMode(cfg.Markdown).WithStyle(cfg.MarkdownStyle)), "\n"))
			}
			return nil
		},
	}
}
