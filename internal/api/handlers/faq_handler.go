package handlers

import (
	"context"
	"net/http"

	"github.com/providervault/ai-service/internal/domain/entities"
)

// NetworkFAQ defines the handler dependency for conversational network
// questions.
type NetworkFAQ interface {
	Ask(ctx context.Context, question string, history []entities.ConversationTurn) (*entities.FAQAnswer, error)
}

// FAQHandler handles conversational FAQ requests
type FAQHandler struct {
	service NetworkFAQ
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(service NetworkFAQ) *FAQHandler {
	return &FAQHandler{service: service}
}

type faqRequest struct {
	Question            string                     `json:"question"`
	ConversationHistory []entities.ConversationTurn `json:"conversation_history"`
}

// Ask handles POST /api/faq
func (h *FAQHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	result, err := h.service.Ask(r.Context(), req.Question, req.ConversationHistory)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
