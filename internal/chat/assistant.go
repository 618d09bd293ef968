// Package chat is the storefront concierge: a linear transcript backed by one
// multi-turn conversation with the text service.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/lumiere-stone/atelier/internal/llm"
	"github.com/lumiere-stone/atelier/internal/metrics"
	"github.com/lumiere-stone/atelier/internal/models"
)

const (
	Greeting = "Bonjour. I am your personal concierge at Lumière & Stone. How may I assist you with your selection today?"

	Apology = "My apologies, I am momentarily unable to access the archives. Please try again shortly."

	SystemInstruction = "You are a digital concierge for 'Lumière & Stone', an ultra-luxury jewelry maison similar to Cartier or Van Cleef & Arpels. " +
		"Your tone is sophisticated, polite, elegant, and concise. You help customers with inquiries about diamonds (4Cs), ring sizing, and styling advice. " +
		"Never break character. Keep responses relatively short (under 50 words) unless detailed technical explanation is asked."
)

const operation = "chat"

var (
	ErrNotOpen = errors.New("chat panel is not open")
	ErrBusy    = errors.New("a message is already awaiting a reply")

	errNoConversation = errors.New("conversation could not be started")
)

// Assistant is safe for concurrent use. At most one message is in flight.
type Assistant struct {
	starter llm.ConversationStarter
	logger  *slog.Logger

	mu         sync.Mutex
	opened     bool
	loading    bool
	conv       llm.Conversation
	transcript []models.ChatTurn
}

func NewAssistant(starter llm.ConversationStarter, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		starter:    starter,
		logger:     logger,
		transcript: []models.ChatTurn{{Speaker: models.SpeakerModel, Text: Greeting}},
	}
}

// Open starts the conversation the first time the panel opens and reuses it
// afterwards. A failed start is logged; later sends then get the apology.
func (a *Assistant) Open(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.opened {
		return
	}
	a.opened = true

	conv, err := a.starter.StartConversation(ctx, SystemInstruction)
	if err != nil {
		a.logger.Warn("Chat session could not be started", slog.String("error", err.Error()))
		return
	}
	a.conv = conv
}

// Send appends the shopper's message at once, then the reply or the apology.
// Blank input is ignored.
func (a *Assistant) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	a.mu.Lock()
	if !a.opened {
		a.mu.Unlock()
		return ErrNotOpen
	}
	if a.loading {
		a.mu.Unlock()
		return ErrBusy
	}
	a.transcript = append(a.transcript, models.ChatTurn{Speaker: models.SpeakerUser, Text: text})
	a.loading = true
	conv := a.conv
	a.mu.Unlock()

	var (
		reply string
		err   = errNoConversation
	)
	if conv != nil {
		reply, err = conv.Send(ctx, text)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false

	switch {
	case err != nil:
		a.logger.Warn("Chat reply failed, serving apology", slog.String("error", err.Error()))
		metrics.ObserveCollaborator(operation, metrics.OutcomeFallback)
		a.transcript = append(a.transcript, models.ChatTurn{Speaker: models.SpeakerModel, Text: Apology})
	case reply == "":
		metrics.ObserveCollaborator(operation, metrics.OutcomeEmpty)
	default:
		metrics.ObserveCollaborator(operation, metrics.OutcomeSuccess)
		a.transcript = append(a.transcript, models.ChatTurn{Speaker: models.SpeakerModel, Text: reply})
	}

	return nil
}

func (a *Assistant) Snapshot() models.ChatResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	return models.ChatResponse{
		Open:       a.opened,
		Loading:    a.loading,
		Transcript: append([]models.ChatTurn(nil), a.transcript...),
	}
}
