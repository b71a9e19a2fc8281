package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recipe-organizer/internal/app"
	"recipe-organizer/internal/config"
	"recipe-organizer/internal/ingredient"
	"recipe-organizer/internal/metrics"
	"recipe-organizer/internal/shoppinglist"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the shopping list application.
type Bot struct {
	api          *tgbotapi.BotAPI
	app          *app.App
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App, metricsStore *metrics.Store) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		app:          application,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	userID := strconv.FormatInt(msg.From.ID, 10)

	switch {
	case strings.HasPrefix(text, "/list"):
		b.handleListRequest(msg.Chat.ID, userID)
	case strings.HasPrefix(text, "/done "):
		b.handleCrossOffRequest(msg.Chat.ID, userID, strings.TrimPrefix(text, "/done "))
	case strings.HasPrefix(text, "/undo "):
		b.handleUncrossRequest(msg.Chat.ID, userID, strings.TrimPrefix(text, "/undo "))
	case strings.HasPrefix(text, "/remove "):
		b.handleRemoveRequest(msg.Chat.ID, userID, strings.TrimPrefix(text, "/remove "))
	case text == "/clear":
		b.handleClearRequest(msg.Chat.ID, userID)
	case text == "/units":
		b.handleUnitsRequest(msg.Chat.ID)
	case text == "/share":
		b.handleShareRequest(msg.Chat.ID, userID)
	case text == "/metrics":
		b.handleMetricsRequest(msg)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClipRequest(msg.Chat.ID, userID, text)
	default:
		b.handleAddRequest(msg.Chat.ID, userID, text)
	}
}

func (b *Bot) handleAddRequest(chatID int64, userID, text string) {
	lines := strings.Split(text, "\n")

	added, err := b.app.AddLines(context.Background(), userID, lines)
	if err != nil {
		b.sendError(chatID, "Error adding items", err)
		return
	}
	b.sendMarkdown(chatID, fmt.Sprintf("🛒 Added *%d* item(s) to your list. Send /list to see it.", added))
}

func (b *Bot) handleClipRequest(chatID int64, userID, url string) {
	sentMsg, err := b.sendMarkdown(chatID, "✂️ *Clipping recipe...*")
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rec, err := b.app.ImportRecipe(ctx, userID, url)
	var finalText string
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error clipping recipe:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s\n*Ingredients added:* %d", rec.Title, len(rec.Ingredients))
	}

	edit := tgbotapi.NewEditMessageText(chatID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleListRequest(chatID int64, userID string) {
	lines, err := b.app.List(context.Background(), userID)
	if err != nil {
		b.sendError(chatID, "Error loading list", err)
		return
	}
	b.sendMarkdown(chatID, formatListMarkdown(lines))
}

func (b *Bot) handleCrossOffRequest(chatID int64, userID, label string) {
	if err := b.app.CrossOff(context.Background(), userID, label); err != nil {
		b.sendError(chatID, "Error crossing off item", err)
		return
	}
	b.sendMarkdown(chatID, fmt.Sprintf("✔️ Crossed off *%s*.", label))
}

func (b *Bot) handleUncrossRequest(chatID int64, userID, label string) {
	if err := b.app.Uncross(context.Background(), userID, label); err != nil {
		b.sendError(chatID, "Error restoring item", err)
		return
	}
	b.sendMarkdown(chatID, fmt.Sprintf("↩️ Restored *%s*.", label))
}

func (b *Bot) handleRemoveRequest(chatID int64, userID, label string) {
	if err := b.app.Remove(context.Background(), userID, label); err != nil {
		b.sendError(chatID, "Error removing item", err)
		return
	}
	b.sendMarkdown(chatID, fmt.Sprintf("🗑 Removed *%s*.", label))
}

func (b *Bot) handleClearRequest(chatID int64, userID string) {
	if err := b.app.Clear(context.Background(), userID); err != nil {
		b.sendError(chatID, "Error clearing list", err)
		return
	}
	b.sendMarkdown(chatID, "🧹 List cleared.")
}

func (b *Bot) handleUnitsRequest(chatID int64) {
	b.sendMarkdown(chatID, formatUnitsMarkdown(ingredient.MeasureOptions()))
}

func (b *Bot) handleShareRequest(chatID int64, userID string) {
	token, err := b.app.ShareLink(userID, 7*24*time.Hour)
	if err != nil {
		b.sendError(chatID, "Error creating share link", err)
		return
	}
	b.sendMarkdown(chatID, fmt.Sprintf("🔗 Share token (valid 7 days):\n```\n%s\n```", token))
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.sendMarkdown(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.sendError(msg.Chat.ID, "Error fetching metrics", err)
		return
	}

	health := metrics.GetSysHealth(b.cfg.DataPath)
	b.sendMarkdown(msg.Chat.ID, formatMetricsMarkdown(usage, health))
}

func (b *Bot) sendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	return b.api.Send(msg)
}

func (b *Bot) sendError(chatID int64, prefix string, err error) {
	log.Printf("%s: %v", prefix, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.sendMarkdown(chatID, fmt.Sprintf("❌ *%s:*\n```\n%v\n```", prefix, safeErr))
}

func formatListMarkdown(lines []shoppinglist.Line) string {
	if len(lines) == 0 {
		return "🛒 *Shopping List*\n\n_Empty. Send ingredient lines or a recipe URL to fill it._"
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, line := range lines {
		if line.CrossedOff {
			sb.WriteString(fmt.Sprintf("• ~%s~ (%s)", line.Label, line.Quantity))
		} else {
			sb.WriteString(fmt.Sprintf("• *%s* (%s)", line.Label, line.Quantity))
		}
		if len(line.Sources) > 0 {
			sb.WriteString(fmt.Sprintf("\n  _%s_", strings.Join(line.Sources, ", ")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatUnitsMarkdown(opts []ingredient.MeasureOption) string {
	var sb strings.Builder
	sb.WriteString("📏 *Known Units*\n\n")
	for _, opt := range opts {
		sb.WriteString(fmt.Sprintf("• %s (%s)\n", opt.Value, opt.Label))
	}
	return sb.String()
}

func formatMetricsMarkdown(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Imports*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d imports, %d/%d lines parsed, %d unknown units\n",
			d.Date, d.Imports, d.LinesParsed, d.LinesTotal, d.UnknownUnits))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDirSize))

	return sb.String()
}
