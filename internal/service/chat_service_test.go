package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"notechat-be/internal/constant"
	"notechat-be/internal/dto"
	"notechat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNote(factory *fakeUowFactory, status entity.ProcessingStatus, text string) *entity.Note {
	note := &entity.Note{
		Id:               uuid.New(),
		Title:            "notes.jpg",
		OriginalFileURL:  "U",
		FileType:         entity.FileTypeImage,
		ProcessingStatus: status,
		CreatedAt:        time.Now(),
	}
	if text != "" {
		note.ExtractedText = &text
	}
	factory.uow.noteRepo.notes = append(factory.uow.noteRepo.notes, note)
	return note
}

func newChatServiceForTest(factory *fakeUowFactory, provider *fakeLLMProvider) IChatService {
	return NewChatService(factory, provider, nopLogger{})
}

func TestSendChat_PromptEmbedsNoteAndQuestion(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateText: "You should buy milk!"}
	svc := newChatServiceForTest(factory, provider)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	res, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{
		Message: "What should I buy?",
	})

	require.NoError(t, err)
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Buy milk", "prompt carries the note text verbatim")
	assert.Contains(t, provider.prompts[0], "What should I buy?", "prompt carries the question verbatim")

	assert.True(t, res.UserMessage.IsUserMessage)
	assert.False(t, res.Reply.IsUserMessage)
	assert.Equal(t, "You should buy milk!", res.Reply.Message)
	require.NotNil(t, res.Reply.Id, "successful replies are persisted")

	// Both turns stored: user message then assistant reply
	messages := factory.uow.chatRepo.messages
	require.Len(t, messages, 2)
	assert.True(t, messages[0].IsUserMessage)
	assert.False(t, messages[1].IsUserMessage)
}

func TestSendChat_RequiresCompletedNote(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.ProcessingStatus
		text    string
		wantErr error
	}{
		{name: "processing note", status: entity.ProcessingStatusProcessing, wantErr: ErrNoteNotReady},
		{name: "failed note", status: entity.ProcessingStatusFailed, wantErr: ErrNoteNotReady},
		{name: "completed note", status: entity.ProcessingStatusCompleted, text: "Buy milk", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeUowFactory()
			provider := &fakeLLMProvider{generateText: "reply"}
			svc := newChatServiceForTest(factory, provider)
			note := seedNote(factory, tt.status, tt.text)

			_, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: "hi"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, provider.prompts, "inference must not run for unready notes")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSendChat_UnknownNote(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateText: "reply"}
	svc := newChatServiceForTest(factory, provider)

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "hi"})

	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestSendChat_EmptyMessageIsNoOp(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateText: "reply"}
	svc := newChatServiceForTest(factory, provider)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	for _, message := range []string{"", "   ", "\n\t "} {
		_, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: message})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Empty(t, factory.uow.chatRepo.messages)
	assert.Empty(t, provider.prompts)
}

func TestSendChat_UserMessagePersistedBeforeInference(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateText: "reply"}
	svc := newChatServiceForTest(factory, provider)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	provider.onGenerate = func() {
		require.Len(t, factory.uow.chatRepo.messages, 1, "user message must be stored before inference resolves")
		assert.True(t, factory.uow.chatRepo.messages[0].IsUserMessage)
	}

	_, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)
}

func TestSendChat_InferenceFailureReturnsFallback(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateErr: errors.New("model error")}
	svc := newChatServiceForTest(factory, provider)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	res, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: "hello"})

	require.NoError(t, err, "inference failure degrades to a fallback reply, not a request error")
	assert.Equal(t, constant.ChatFallbackMessageV1, res.Reply.Message)
	assert.False(t, res.Reply.IsUserMessage)
	assert.Nil(t, res.Reply.Id, "the fallback reply is never persisted")

	// Only the user message from step one was stored
	require.Len(t, factory.uow.chatRepo.messages, 1)
	assert.True(t, factory.uow.chatRepo.messages[0].IsUserMessage)
}

func TestSendChat_UserPersistenceFailureDoesNotBlockReply(t *testing.T) {
	factory := newFakeUowFactory()
	factory.uow.chatRepo.createErr = errors.New("db down")
	provider := &fakeLLMProvider{generateText: "still here!"}
	svc := newChatServiceForTest(factory, provider)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	res, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Nil(t, res.UserMessage.Id, "unpersisted user message is still part of the conversation")
	assert.Equal(t, "hello", res.UserMessage.Message)
	assert.Equal(t, "still here!", res.Reply.Message)
	require.Len(t, provider.prompts, 1, "inference runs even when persistence failed")
}

func TestSendChat_SecondSubmissionWhileReplyPending(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateText: "reply"}
	svc := newChatServiceForTest(factory, provider).(*chatService)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	require.True(t, svc.acquireReply(note.Id))

	_, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrReplyPending)

	svc.releaseReply(note.Id)
	_, err = svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: "hello"})
	assert.NoError(t, err)
}

func TestGetChatHistory_OrderedByCreationTime(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateText: "reply"}
	svc := newChatServiceForTest(factory, provider)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	base := time.Now()
	script := []struct {
		message string
		isUser  bool
	}{
		{"What should I buy?", true},
		{"Milk, according to your note.", false},
		{"Anything else?", true},
		{"That's all your note mentions.", false},
	}
	for i, m := range script {
		factory.uow.chatRepo.messages = append(factory.uow.chatRepo.messages, &entity.ChatMessage{
			Id:            uuid.New(),
			NoteId:        note.Id,
			Message:       m.message,
			IsUserMessage: m.isUser,
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
	}
	// A message for another note must not leak in
	factory.uow.chatRepo.messages = append(factory.uow.chatRepo.messages, &entity.ChatMessage{
		Id:        uuid.New(),
		NoteId:    uuid.New(),
		Message:   "other conversation",
		CreatedAt: base,
	})

	history, err := svc.GetChatHistory(context.Background(), note.Id)

	require.NoError(t, err)
	require.Len(t, history, len(script))
	for i, m := range script {
		assert.Equal(t, m.message, history[i].Message)
		assert.Equal(t, m.isUser, history[i].IsUserMessage)
		require.NotNil(t, history[i].Id)
	}
}

func TestSendChat_MessageIsTrimmed(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeLLMProvider{generateText: "reply"}
	svc := newChatServiceForTest(factory, provider)
	note := seedNote(factory, entity.ProcessingStatusCompleted, "Buy milk")

	res, err := svc.SendChat(context.Background(), note.Id, &dto.SendChatRequest{Message: "  hello there  \n"})

	require.NoError(t, err)
	assert.Equal(t, "hello there", res.UserMessage.Message)
	require.Len(t, provider.prompts, 1)
	assert.True(t, strings.Contains(provider.prompts[0], `"hello there"`))
}
