// Package mocks holds testify mocks for the llm interfaces.
package mocks

import (
	"context"

	"github.com/lumiere-stone/atelier/internal/llm"
	"github.com/stretchr/testify/mock"
)

type Generator struct {
	mock.Mock
}

func (m *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type Conversation struct {
	mock.Mock
}

func (m *Conversation) Send(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

type ConversationStarter struct {
	mock.Mock
}

func (m *ConversationStarter) StartConversation(ctx context.Context, systemInstruction string) (llm.Conversation, error) {
	args := m.Called(ctx, systemInstruction)
	conv, _ := args.Get(0).(llm.Conversation)
	return conv, args.Error(1)
}
