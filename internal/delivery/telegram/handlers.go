package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NasaVasa/stocky/internal/domain"
	"github.com/NasaVasa/stocky/internal/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handlers struct {
	userUC  *usecase.UserUsecase
	alertUC *usecase.AlertUsecase
	quoteUC *usecase.QuoteUsecase
	logger  *zap.Logger
}

func NewHandlers(userUC *usecase.UserUsecase, alertUC *usecase.AlertUsecase, quoteUC *usecase.QuoteUsecase, logger *zap.Logger) *Handlers {
	return &Handlers{userUC: userUC, alertUC: alertUC, quoteUC: quoteUC, logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update)
		return
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	username := update.Message.From.UserName

	h.logger.Info(
		"telegram command received",
		zap.Int64("chat_id", chatID),
		zap.Int64("telegram_user_id", userID),
		zap.String("username", username),
		zap.String("command", command),
		zap.String("args", args),
	)

	switch command {
	case "start":
		_, err := h.userUC.StartOrGetUser(ctx, userID, username)
		if err != nil {
			h.logger.Warn("start command failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, "Failed to register. Please try again.")
			return
		}
		h.reply(api, chatID, "Welcome to Stocky.\n\n"+HelpText)
	case "help":
		h.reply(api, chatID, HelpText)
	case "quote":
		ticker, err := ParseTicker(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /quote <ticker>")
			return
		}
		quote, err := h.quoteUC.GetQuote(ctx, ticker)
		if err != nil {
			h.logger.Warn("quote failed", zap.Int64("telegram_user_id", userID), zap.String("ticker", ticker), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, fmt.Sprintf("%s: %s %s", quote.Ticker, quote.Price.String(), quote.Currency))
	case "add":
		ticker, direction, price, expiresAt, err := ParseAddAlertArgs(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /add <ticker> <above|below> <price> [expiration]")
			return
		}
		alert, err := h.alertUC.AddAlert(ctx, userID, ticker, direction, price, expiresAt)
		if err != nil {
			h.logger.Warn("add failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("add complete", zap.Int64("telegram_user_id", userID), zap.Uint("alert_id", alert.ID))
		h.reply(api, chatID, fmt.Sprintf("Alert created: %s", formatAlertLine(*alert)))
	case "alerts":
		alerts, err := h.alertUC.ListAlerts(ctx, userID)
		if err != nil {
			h.logger.Warn("alerts list failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, formatAlertList(alerts))
	case "search":
		alerts, err := h.alertUC.SearchAlerts(ctx, userID, args)
		if err != nil {
			h.logger.Warn("search failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, formatAlertList(alerts))
	case "delete":
		alertID, err := ParseAlertID(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /delete <alert_id>")
			return
		}
		if err := h.alertUC.DeleteAlert(ctx, userID, alertID); err != nil {
			h.logger.Warn("delete failed", zap.Int64("telegram_user_id", userID), zap.Uint("alert_id", alertID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("delete complete", zap.Int64("telegram_user_id", userID), zap.Uint("alert_id", alertID))
		h.reply(api, chatID, fmt.Sprintf("Alert #%d deleted.", alertID))
	default:
		h.logger.Warn("unknown command", zap.Int64("telegram_user_id", userID), zap.String("command", command))
		h.reply(api, chatID, "Unknown command.\n\n"+HelpText)
	}
}

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handlers) errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrUserNotRegistered):
		return "Please /start to register first."
	case errors.Is(err, usecase.ErrInvalidTicker):
		return "Invalid ticker. Use 1-10 characters, e.g. AAPL."
	case errors.Is(err, usecase.ErrInvalidDirection):
		return "Invalid direction. Use above or below."
	case errors.Is(err, usecase.ErrInvalidPrice):
		return "Invalid price. Use a positive number like 150 or 149.99."
	case errors.Is(err, usecase.ErrPastExpiration):
		return "Expiration must be in the future."
	case errors.Is(err, usecase.ErrAlertNotFound):
		return "Alert not found."
	case errors.Is(err, usecase.ErrUnknownTicker):
		return "Unknown ticker. Ensure the symbol is correct."
	case errors.Is(err, domain.ErrSourceUnavailable):
		return "Market data is unavailable right now. Please try again later."
	}

	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}

func formatAlertList(alerts []domain.Alert) string {
	if len(alerts) == 0 {
		return "No alerts found. Use /add to create one."
	}
	var builder strings.Builder
	builder.WriteString("Your alerts:\n")
	for _, alert := range alerts {
		builder.WriteString(formatAlertLine(alert))
		builder.WriteString("\n")
	}
	return builder.String()
}

func formatAlertLine(alert domain.Alert) string {
	status := "pending"
	switch {
	case alert.Triggered:
		status = "triggered"
	case alert.Expired != nil && *alert.Expired:
		status = "expired"
	}
	line := fmt.Sprintf("#%d [%s] %s %s %s", alert.ID, status, alert.Ticker, alert.Direction, alert.Price.String())
	if alert.ExpirationTime != nil {
		line += fmt.Sprintf(" (expires %s)", alert.ExpirationTime.UTC().Format(time.RFC3339))
	}
	if alert.TriggeredTime != nil {
		line += fmt.Sprintf(" (triggered %s)", alert.TriggeredTime.UTC().Format(time.RFC3339))
	}
	return line
}
