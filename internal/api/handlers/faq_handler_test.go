package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/providervault/ai-service/internal/api/handlers"
	"github.com/providervault/ai-service/internal/domain/entities"
)

type MockFAQService struct {
	mock.Mock
}

func (m *MockFAQService) Ask(ctx context.Context, question string, history []entities.ConversationTurn) (*entities.FAQAnswer, error) {
	args := m.Called(ctx, question, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FAQAnswer), args.Error(1)
}

func TestFAQHandler_Ask(t *testing.T) {
	mockService := new(MockFAQService)
	handler := handlers.NewFAQHandler(mockService)

	history := []entities.ConversationTurn{
		{Role: entities.RoleUser, Text: "How many cardiologists do you have?"},
		{Role: entities.RoleAssistant, Text: "We have 85 cardiologists."},
	}
	expected := &entities.FAQAnswer{
		Answer:              "About 120 of them practice in Texas.",
		FollowUpSuggestions: []string{"Which cities in Texas?"},
		ConversationHistory: append(history,
			entities.ConversationTurn{Role: entities.RoleUser, Text: "What about in TX?"},
			entities.ConversationTurn{Role: entities.RoleAssistant, Text: "About 120 of them practice in Texas."},
		),
	}
	mockService.On("Ask", mock.Anything, "What about in TX?", history).Return(expected, nil)

	body := `{
		"question": "What about in TX?",
		"conversation_history": [
			{"role": "user", "content": "How many cardiologists do you have?"},
			{"role": "assistant", "content": "We have 85 cardiologists."}
		]
	}`
	req := httptest.NewRequest("POST", "/api/faq", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Ask(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entities.FAQAnswer
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, expected.Answer, resp.Answer)
	assert.Len(t, resp.ConversationHistory, 4)
}
