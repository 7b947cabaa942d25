package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/juju/clock"
	"github.com/juju/retry"

	"github.com/ObiAU/techdigest/internal/models"
	"github.com/ObiAU/techdigest/internal/telegram"
)

const (
	// pollTimeout is the Telegram long-poll window in seconds.
	pollTimeout = 30

	// replyLimit stays under Telegram's message cap for plain-text replies.
	replyLimit = 3900

	pollRetryDelay    = 2 * time.Second
	pollRetryMaxDelay = 60 * time.Second
)

const contextPrefix = `You are working in the tech digest repository. It fetches release feeds, classifies changes, and delivers a Telegram digest. Key paths: internal/sources (feed adapters), internal/digest (composition), internal/state (novelty tracking).
Make the requested change directly. Keep your final response to 1-3 sentences.`

type telegramAPI interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type workspace interface {
	Changes() (string, error)
	CommitAndPush(request string) (pushed bool, pushErr string, err error)
	LastCommitStat() (string, error)
	LastCommitSubject() (string, error)
}

// Listener long-polls Telegram and hands each message from the authorized
// chat to a claude session as an edit request. Messages from any other chat
// are dropped without a reply.
type Listener struct {
	api      telegramAPI
	chatID   int64
	runner   models.CommandRunner
	repo     workspace
	offsets  *OffsetStore
	clock    clock.Clock
	runLimit time.Duration
}

func NewListener(api telegramAPI, chatID int64, runner models.CommandRunner, repo workspace, offsets *OffsetStore, runLimit time.Duration) *Listener {
	return &Listener{
		api:      api,
		chatID:   chatID,
		runner:   runner,
		repo:     repo,
		offsets:  offsets,
		clock:    clock.WallClock,
		runLimit: runLimit,
	}
}

// Run polls until ctx is cancelled. Transient poll errors back off and
// retry indefinitely; shutdown waits out the in-flight poll.
func (l *Listener) Run(ctx context.Context) error {
	offset, ok := l.offsets.Load()
	if ok {
		log.Printf("resuming from update offset %d", offset)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := l.poll(ctx, offset)
		if err != nil {
			if retry.IsRetryStopped(err) {
				return nil
			}
			return err
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			if err := l.offsets.Save(offset); err != nil {
				log.Printf("failed to save offset: %v", err)
			}
			l.handleUpdate(ctx, update)
		}
	}
}

func (l *Listener) poll(ctx context.Context, offset int) ([]tgbotapi.Update, error) {
	var updates []tgbotapi.Update
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			cfg := tgbotapi.NewUpdate(offset)
			cfg.Timeout = pollTimeout
			cfg.AllowedUpdates = []string{"message"}

			var err error
			updates, err = l.api.GetUpdates(cfg)
			return err
		},
		NotifyFunc: func(lastError error, attempt int) {
			log.Printf("poll failed (attempt %d): %v", attempt, lastError)
		},
		Attempts:    retry.UnlimitedAttempts,
		Delay:       pollRetryDelay,
		MaxDelay:    pollRetryMaxDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       l.clock,
		Stop:        ctx.Done(),
	})
	return updates, err
}

func (l *Listener) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}
	if msg.Chat.ID != l.chatID {
		return
	}

	log.Printf("handling request: %.80s", msg.Text)
	l.reply("Processing...")

	runCtx, cancel := context.WithTimeout(ctx, l.runLimit)
	defer cancel()

	prompt := contextPrefix + "\n\nUser request: " + msg.Text
	response, err := l.runner.Run(runCtx, prompt)
	if err != nil {
		response = fmt.Sprintf("⚠️ %v", err)
	}

	l.reply(response + l.commitSummary(msg.Text))
}

// commitSummary commits whatever the claude session changed and renders the
// outcome. A clean tree contributes nothing to the reply.
func (l *Listener) commitSummary(request string) string {
	changes, err := l.repo.Changes()
	if err != nil {
		return "\n\n---\n⚠️ " + err.Error()
	}
	if changes == "" {
		return ""
	}

	pushed, pushErr, err := l.repo.CommitAndPush(request)
	if err != nil {
		return "\n\n---\n⚠️ Commit failed: " + err.Error()
	}

	stat, _ := l.repo.LastCommitStat()
	subject, _ := l.repo.LastCommitSubject()

	summary := "\n\n---\n🔧 Changed:\n" + stat + "\n\n✅ Committed: " + subject
	if pushed {
		summary += "\n🚀 Pushed"
	} else {
		summary += "\n⚠️ Push failed: " + pushErr
	}
	return summary
}

func (l *Listener) reply(text string) {
	for _, chunk := range telegram.SplitLines(text, replyLimit) {
		msg := tgbotapi.NewMessage(l.chatID, chunk)
		msg.DisableWebPagePreview = true
		if _, err := l.api.Send(msg); err != nil {
			log.Printf("failed to send telegram message: %v", err)
		}
	}
}
