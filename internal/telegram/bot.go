// Package telegram runs the bot surface over long polling.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"pantrychef/internal/app"
	"pantrychef/internal/logger"
	"pantrychef/internal/planner"
	"pantrychef/internal/shopping"
)

const usageText = "🥕 *PantryChef*\n\n" +
	"Send me the ingredients you have (comma separated) and I will tell " +
	"you what you can cook:\n\n" +
	"`tomato, pasta, garlic, olive oil`\n\n" +
	"Commands:\n" +
	"/plan <ingredients> - a 7-day plan of what you can cook\n" +
	"/help - this message"

// Bot wraps the Telegram API around the suggestion app.
type Bot struct {
	api         *tgbotapi.BotAPI
	app         *app.App
	allowUserID int64
}

// NewBot authorizes against the Telegram API. allowUserID restricts the
// bot to a single user; zero allows everyone.
func NewBot(token string, allowUserID int64, application *app.App) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	return &Bot{api: api, app: application, allowUserID: allowUserID}, nil
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if b.allowUserID != 0 && msg.From.ID != b.allowUserID {
		logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", msg.From.ID),
			zap.String("username", msg.From.UserName))
		return
	}

	var reply string
	switch {
	case msg.Text == "/start" || msg.Text == "/help":
		reply = usageText
	case strings.HasPrefix(msg.Text, "/plan"):
		reply = b.planReply(ctx, strings.TrimSpace(strings.TrimPrefix(msg.Text, "/plan")))
	default:
		reply = b.suggestReply(ctx, msg.Text)
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ParseMode = "Markdown"
	if _, err := b.api.Send(out); err != nil {
		logger.Error("failed to send reply", zap.Error(err))
	}
}

func (b *Bot) suggestReply(ctx context.Context, text string) string {
	resp, err := b.app.Suggest(ctx, app.SuggestRequest{Text: text})
	if errors.Is(err, app.ErrNoIngredients) {
		return "I could not find any ingredients in that message.\n\n" + usageText
	}
	if err != nil {
		logger.Error("suggest failed", zap.Error(err))
		return "❌ Something went wrong, please try again."
	}
	return formatSuggestions(resp)
}

func (b *Bot) planReply(ctx context.Context, text string) string {
	resp, err := b.app.Suggest(ctx, app.SuggestRequest{Text: text})
	if errors.Is(err, app.ErrNoIngredients) {
		return "Tell me what you have, e.g. `/plan tomato, pasta, egg`."
	}
	if err != nil {
		logger.Error("plan failed", zap.Error(err))
		return "❌ Something went wrong, please try again."
	}

	week, err := b.app.PlanWeek(resp, nil)
	if err != nil {
		logger.Error("plan failed", zap.Error(err))
		return "❌ Something went wrong, please try again."
	}
	if week.Assigned() == 0 {
		return "You cannot fully cook anything yet.\n\n" + formatSuggestions(resp)
	}
	return formatPlan(week)
}

func formatSuggestions(resp *app.SuggestResponse) string {
	var sb strings.Builder

	for _, w := range resp.Warnings {
		sb.WriteString(fmt.Sprintf("⚠️ %s\n", w))
	}
	if len(resp.Warnings) > 0 {
		sb.WriteString("\n")
	}

	if len(resp.Available) > 0 {
		sb.WriteString(fmt.Sprintf("🥕 *You have:* %s\n\n", strings.Join(resp.Available, ", ")))
	}

	if len(resp.Ready) == 0 && len(resp.Almost) == 0 {
		sb.WriteString("Nothing matches well enough yet. Add a few more ingredients and try again.")
		return sb.String()
	}

	if len(resp.Ready) > 0 {
		sb.WriteString("✅ *Ready to cook*\n")
		for _, r := range resp.Ready {
			sb.WriteString(fmt.Sprintf("• %s (%d/%d)\n", r.Recipe.Name, r.Matched, r.Required))
		}
		sb.WriteString("\n")
	}

	if len(resp.Almost) > 0 {
		sb.WriteString("🧂 *Almost there*\n")
		for _, r := range resp.Almost {
			sb.WriteString(fmt.Sprintf("• %s (%d/%d), needs %s\n",
				r.Recipe.Name, r.Matched, r.Required, strings.Join(r.Missing, ", ")))
		}
		sb.WriteString("\n")

		if list := shopping.Build(resp.Almost); len(list) > 0 {
			sb.WriteString("🛒 *Shopping list*\n")
			for _, item := range list {
				sb.WriteString(fmt.Sprintf("• %s\n", item))
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatPlan(week planner.Week) string {
	var sb strings.Builder
	sb.WriteString("📅 *Weekly Meal Plan*\n\n")

	for _, dp := range week.Plan {
		if dp.Recipe != nil {
			sb.WriteString(fmt.Sprintf("*%s*: %s\n", dp.Day, dp.Recipe.Name))
		} else {
			sb.WriteString(fmt.Sprintf("*%s*: _rest day_\n", dp.Day))
		}
	}

	return sb.String()
}
