package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/ObiAU/techdigest/internal/bot"
	"github.com/ObiAU/techdigest/internal/claude"
	"github.com/ObiAU/techdigest/internal/telegram"
)

func newBotCmd() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Listen for chat messages and run them as repository edit requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
				return telegram.ErrMissingCredentials
			}

			if repoDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				repoDir = wd
			}

			// The poll client must outlive the 30s long-poll window.
			api, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, tgbotapi.APIEndpoint,
				&http.Client{Timeout: 40 * time.Second})
			if err != nil {
				return fmt.Errorf("failed to create telegram bot: %w", err)
			}

			runner := &claude.CLI{SkipPermissions: true}
			listener := bot.NewListener(
				api,
				cfg.TelegramChatID,
				runner,
				bot.NewGitWorkspace(repoDir),
				bot.NewOffsetStore(cfg.OffsetFile),
				cfg.ClaudeTimeout,
			)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			log.Printf("bot listening on chat %d, editing %s", cfg.TelegramChatID, repoDir)
			err = listener.Run(ctx)
			log.Println("bot stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", "", "repository the bot edits (default: working directory)")
	return cmd
}
