package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homework-notifier/internal/config"
	"homework-notifier/internal/homework"
	"homework-notifier/internal/logging"
	"homework-notifier/internal/models"
	"homework-notifier/internal/practicum"
	"homework-notifier/internal/providers"
)

// Fetcher returns the raw status API payload for a poll window.
type Fetcher interface {
	Fetch(ctx context.Context, watermark int64) (any, error)
}

// Notifier delivers text to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID, text string) error
}

// Sink receives a record of every delivery attempt.
type Sink interface {
	Publish(ctx context.Context, n models.Notification) error
}

// Snapshot is a copy of the poll loop state for read-only consumers.
type Snapshot struct {
	Watermark  int64     `json:"watermark"`
	LastPollAt time.Time `json:"last_poll_at"`
	LastError  string    `json:"last_error"`
	Iterations int       `json:"iterations"`
	Sent       int       `json:"sent"`
	Suppressed int       `json:"suppressed"`
}

// Service polls homework statuses and relays changes to the chat.
// Watermark and lastErrorMessage belong to the polling goroutine only.
type Service struct {
	fetcher     Fetcher
	notifier    Notifier
	sinks       []Sink
	logger      *logging.Logger
	chatID      string
	retryPeriod time.Duration
	now         func() time.Time

	watermark        int64
	lastErrorMessage string

	mu       sync.RWMutex
	snapshot Snapshot

	wsManager *WebSocketManager
}

// New constructs a Service. The WebSocket feed is always registered as a sink.
func New(fetcher Fetcher, notifier Notifier, logger *logging.Logger, cfg config.Config, sinks ...Sink) *Service {
	ws := NewWebSocketManager(logger)
	return &Service{
		fetcher:     fetcher,
		notifier:    notifier,
		sinks:       append(sinks, ws),
		logger:      logger,
		chatID:      cfg.Telegram.ChatID,
		retryPeriod: cfg.Poll.RetryPeriod,
		now:         time.Now,
		wsManager:   ws,
	}
}

// Logger exposes the Service's logger
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// WebSockets exposes the live notification feed.
func (s *Service) WebSockets() *WebSocketManager {
	return s.wsManager
}

// Start runs the poll loop in a goroutine tracked by wg.
func (s *Service) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Errorf("Poll loop stopped: %v", err)
		}
	}()
}

// Run polls until ctx is cancelled, sleeping the retry period between
// iterations.
func (s *Service) Run(ctx context.Context) error {
	s.watermark = s.now().Unix()
	s.setSnapshot(func(snap *Snapshot) { snap.Watermark = s.watermark })
	s.logger.Infof("Poll loop started, retry period %v", s.retryPeriod)

	for {
		s.poll(ctx)

		timer := time.NewTimer(s.retryPeriod)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Poll loop stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// poll runs one iteration and reports its failure, if any.
func (s *Service) poll(ctx context.Context) {
	err := s.iterate(ctx)
	if err != nil && ctx.Err() == nil {
		s.handleError(ctx, err)
	}
	s.setSnapshot(func(snap *Snapshot) {
		snap.Watermark = s.watermark
		snap.LastPollAt = s.now()
		snap.LastError = s.lastErrorMessage
		snap.Iterations++
	})
}

// iterate fetches, validates and notifies. The watermark only moves when
// every step succeeds.
func (s *Service) iterate(ctx context.Context) error {
	payload, err := s.fetcher.Fetch(ctx, s.watermark)
	if err != nil {
		return err
	}
	records, err := homework.CheckResponse(payload)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.logger.Debug("No new statuses in response")
	}

	// Translate everything first so a bad record does not leave a partial batch sent.
	homeworks := make([]homework.Homework, 0, len(records))
	for _, record := range records {
		hw, err := homework.ParseHomework(record)
		if err != nil {
			return err
		}
		homeworks = append(homeworks, hw)
	}

	for _, hw := range homeworks {
		if err := s.send(ctx, models.KindStatus, &hw, hw.Message()); err != nil {
			return err
		}
		s.lastErrorMessage = ""
	}

	if ts, ok := homework.CurrentDate(payload); ok {
		s.watermark = ts
	}
	return nil
}

// handleError reports err to the chat unless the same message was the last
// one reported. Delivery failures here are logged and dropped.
func (s *Service) handleError(ctx context.Context, err error) {
	message := fmt.Sprintf("Сбой в работе программы: %v", err)
	s.logger.WithField("kind", errorKind(err)).Error(message)

	if message == s.lastErrorMessage {
		s.logger.Debug("Error already reported, notification suppressed")
		s.setSnapshot(func(snap *Snapshot) { snap.Suppressed++ })
		return
	}
	if sendErr := s.send(ctx, models.KindError, nil, message); sendErr != nil {
		s.logger.Warnf("Could not report error to chat: %v", sendErr)
	}
	s.lastErrorMessage = message
}

// send notifies the chat and fans the attempt out to every sink.
func (s *Service) send(ctx context.Context, kind string, hw *homework.Homework, text string) error {
	err := s.notifier.Notify(ctx, s.chatID, text)

	record := models.NewNotification(kind, s.chatID, text)
	if hw != nil {
		record.Homework = hw.Name
		record.Status = hw.Status
	}
	record.Delivered = err == nil
	if err != nil {
		record.Error = err.Error()
	} else {
		s.setSnapshot(func(snap *Snapshot) { snap.Sent++ })
	}

	for _, sink := range s.sinks {
		if pubErr := sink.Publish(ctx, record); pubErr != nil {
			s.logger.Errorf("Sink %T failed for notification %s: %v", sink, record.ID, pubErr)
		}
	}
	return err
}

// Snapshot returns a copy of the current loop state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Service) setSnapshot(update func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.snapshot)
}

// errorKind names the failure class of err for structured logs.
func errorKind(err error) string {
	var (
		upstream *practicum.UpstreamError
		mismatch *homework.TypeMismatchError
		missing  *homework.MissingFieldError
		unknown  *homework.UnknownStatusError
		delivery *providers.DeliveryError
	)
	switch {
	case errors.As(err, &upstream):
		return "upstream"
	case errors.As(err, &mismatch):
		return "type_mismatch"
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &unknown):
		return "unknown_status"
	case errors.As(err, &delivery):
		return "delivery"
	default:
		return "unexpected"
	}
}
