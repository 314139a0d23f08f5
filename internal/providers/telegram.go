package providers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"
	"homework-notifier/internal/logging"
)

// DeliveryError reports a message the Telegram channel failed to deliver.
type DeliveryError struct {
	ChatID string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("Ошибка при отправке сообщения в чат %s: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Telegram sends plain-text messages through the go-telegram/bot client.
type Telegram struct {
	bot     *bot.Bot
	limiter *rate.Limiter
	logger  *logging.Logger
}

// NewTelegram initializes the bot client. ratePerSecond caps outgoing
// messages; extra options are passed to bot.New.
func NewTelegram(token string, ratePerSecond int, logger *logging.Logger, opts ...bot.Option) (*Telegram, error) {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	opts = append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	return &Telegram{
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
		logger:  logger,
	}, nil
}

// Notify sends text to chatID. It does not retry.
func (t *Telegram) Notify(ctx context.Context, chatID, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return &DeliveryError{ChatID: chatID, Err: fmt.Errorf("telegram rate limit exceeded: %w", err)}
	}

	t.logger.Debugf("Sending message: %s", text)
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if _, err := t.bot.SendMessage(ctx, params); err != nil {
		t.logger.Errorf("Failed to send Telegram message to chat_id %s: %v", chatID, err)
		return &DeliveryError{ChatID: chatID, Err: err}
	}
	t.logger.Debugf("Message sent: %s", text)
	return nil
}
