package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/pptx"
)

var (
	// ErrGenerationFailed wraps model-call and encoding failures. Credits
	// have been refunded by the time it is returned.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrDeliveryFailed marks an upload failure after content was produced.
	// Logged, never refunded.
	ErrDeliveryFailed = errors.New("delivery failed")
)

// ModelClient is the language-model collaborator: one prompt in, free text
// expected to contain JSON out.
type ModelClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Deliverer uploads a local file to the requesting chat.
type Deliverer interface {
	DeliverDocument(ctx context.Context, chatID int64, path, caption string) error
}

// DeckEncoder turns an outline into a deliverable file on disk.
type DeckEncoder interface {
	Encode(topic string, outline models.Outline, uid int64) (string, error)
	Fallback(topic string, outline models.Outline, uid int64) (string, error)
}

type GenerationRequest struct {
	ChatID     int64
	Topic      string
	SlideCount int
	Caption    string
}

// GenerationService sequences the end-to-end flow: reserve credit, call the
// model, parse, encode, deliver, clean up. It owns the single external
// failure boundary and the refund decision.
type GenerationService struct {
	log     *slog.Logger
	credits *CreditService
	model   ModelClient
	encoder DeckEncoder
	deliver Deliverer
}

func NewGenerationService(log *slog.Logger, credits *CreditService, model ModelClient, encoder DeckEncoder, deliver Deliverer) *GenerationService {
	return &GenerationService{
		log:     log,
		credits: credits,
		model:   model,
		encoder: encoder,
		deliver: deliver,
	}
}

const systemPrompt = "You are a presentation creator. Return valid JSON only."

func userPrompt(topic string, slideCount int) string {
	return fmt.Sprintf(
		`Create a presentation on: %q. Return ONLY valid JSON: {"slides":[{"title":"...","points":["..."]}]} Generate exactly %d slides. No extra text.`,
		topic, slideCount,
	)
}

// Generate runs one request. InsufficientBalance comes back before anything
// slow happens; a model or encode failure refunds the reserved credits; a
// malformed model response still yields a fallback deliverable and keeps the
// debit, since the model did respond.
func (s *GenerationService) Generate(ctx context.Context, acct *models.Account, req GenerationRequest) error {
	if err := s.credits.Reserve(ctx, acct, req.SlideCount); err != nil {
		return err
	}

	raw, err := s.model.Complete(ctx, systemPrompt, userPrompt(req.Topic, req.SlideCount))
	if err != nil {
		s.refund(ctx, acct, req.SlideCount)
		return fmt.Errorf("%w: model call: %v", ErrGenerationFailed, err)
	}

	var path string
	outline, parseErr := pptx.ParseOutline(raw)
	if parseErr != nil {
		s.log.Warn("malformed outline, sending fallback", "err", parseErr, "user_id", acct.ID)
		path, err = s.encoder.Fallback(req.Topic, outline, acct.ID)
	} else {
		path, err = s.encoder.Encode(req.Topic, outline, acct.ID)
	}
	if err != nil {
		s.refund(ctx, acct, req.SlideCount)
		return fmt.Errorf("%w: encode: %v", ErrGenerationFailed, err)
	}
	defer removeFile(s.log, path)

	if err := s.deliver.DeliverDocument(ctx, req.ChatID, path, req.Caption); err != nil {
		// Content was produced, so the debit stands.
		s.log.Error("deck delivery failed", "err", fmt.Errorf("%w: %v", ErrDeliveryFailed, err), "user_id", acct.ID)
	}
	return nil
}

func (s *GenerationService) refund(ctx context.Context, acct *models.Account, slideCount int) {
	if err := s.credits.Release(ctx, acct, slideCount); err != nil {
		s.log.Error("credit refund failed", "err", err, "user_id", acct.ID, "amount", slideCount)
	}
}

func removeFile(log *slog.Logger, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Error("remove temp file", "err", err, "path", path)
	}
}
