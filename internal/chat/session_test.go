package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeChatter scripts Chat responses; Draft is unused here.
type fakeChatter struct {
	reply string
	err   error
	block chan struct{}
	delay time.Duration
	calls int
}

func (f *fakeChatter) Draft(ctx context.Context, docType, language string, fields map[string]string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeChatter) Chat(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.reply, f.err
}

type failingHistory struct{}

func (failingHistory) Append(ctx context.Context, userID string, turn Turn) error {
	return errors.New("mongo down")
}
func (failingHistory) Replay(ctx context.Context, userID string) ([]Turn, error) {
	return nil, errors.New("mongo down")
}

func TestAsk_AppendsBothSides(t *testing.T) {
	hist := NewMemoryHistoryRepository()
	s := NewSession(context.Background(), "u1", hist)

	reply, err := s.Ask(context.Background(), &fakeChatter{reply: "A lease is..."}, "What is a lease?")
	require.NoError(t, err)
	require.Equal(t, "A lease is...", reply)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, SenderUser, msgs[0].Sender)
	require.Equal(t, "What is a lease?", msgs[0].Text)
	require.Equal(t, SenderBot, msgs[1].Sender)
	require.Equal(t, "A lease is...", msgs[1].Text)

	turns, err := hist.Replay(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	require.Equal(t, "What is a lease?", turns[0].UserMessage)
}

func TestAsk_ApologyOnFailure(t *testing.T) {
	s := NewSession(context.Background(), "u1", NewMemoryHistoryRepository())

	reply, err := s.Ask(context.Background(), &fakeChatter{err: errors.New("upstream down")}, "Hello?")
	require.Error(t, err)
	require.Equal(t, Apology, reply)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, Apology, msgs[1].Text)

	// the session accepts new prompts after a failure
	reply, err = s.Ask(context.Background(), &fakeChatter{reply: "better now"}, "Again?")
	require.NoError(t, err)
	require.Equal(t, "better now", reply)
}

func TestAsk_EmptyReplyBecomesApology(t *testing.T) {
	s := NewSession(context.Background(), "u1", nil)
	reply, err := s.Ask(context.Background(), &fakeChatter{reply: ""}, "Hi")
	require.Error(t, err)
	require.Equal(t, Apology, reply)
}

func TestAsk_RejectsWhileAwaiting(t *testing.T) {
	s := NewSession(context.Background(), "u1", nil)
	block := make(chan struct{})
	slow := &fakeChatter{reply: "slow answer", block: block}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Ask(context.Background(), slow, "first")
	}()

	// wait for the first prompt to land in the transcript
	for len(s.Messages()) == 0 {
	}

	_, err := s.Ask(context.Background(), &fakeChatter{reply: "x"}, "second")
	require.ErrorIs(t, err, ErrAwaitingReply)

	close(block)
	<-done

	_, err = s.Ask(context.Background(), &fakeChatter{reply: "y"}, "third")
	require.NoError(t, err)
}

func TestAsk_MirrorFailureKeepsReply(t *testing.T) {
	s := NewSession(context.Background(), "u1", failingHistory{})
	reply, err := s.Ask(context.Background(), &fakeChatter{reply: "kept"}, "Q")
	require.NoError(t, err)
	require.Equal(t, "kept", reply)
	require.Len(t, s.Messages(), 2)
}

func TestNewSession_ReplaysHistoryInOrder(t *testing.T) {
	hist := NewMemoryHistoryRepository()
	ctx := context.Background()
	require.NoError(t, hist.Append(ctx, "u1", Turn{UserMessage: "q1", BotResponse: "a1"}))
	require.NoError(t, hist.Append(ctx, "u1", Turn{UserMessage: "q2", BotResponse: "a2"}))
	require.NoError(t, hist.Append(ctx, "other", Turn{UserMessage: "qx", BotResponse: "ax"}))

	s := NewSession(ctx, "u1", hist)
	msgs := s.Messages()
	require.Len(t, msgs, 4)
	require.Equal(t, "q1", msgs[0].Text)
	require.Equal(t, "a1", msgs[1].Text)
	require.Equal(t, "q2", msgs[2].Text)
	require.Equal(t, "a2", msgs[3].Text)
}

func TestRecordUpload(t *testing.T) {
	hist := NewMemoryHistoryRepository()
	s := NewSession(context.Background(), "u1", hist)

	ack := s.RecordUpload(context.Background(), "evidence.pdf", "")
	require.Contains(t, ack, "evidence.pdf")

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "Uploaded file: evidence.pdf", msgs[0].Text)
	require.Equal(t, ack, msgs[1].Text)

	turns, err := hist.Replay(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, turns, 1)
}

type capturingLog struct {
	entries []Message
}

func (l *capturingLog) Log(ctx context.Context, userID string, msg Message) error {
	l.entries = append(l.entries, msg)
	return nil
}

func TestAsk_MirrorsIndividualMessages(t *testing.T) {
	log := &capturingLog{}
	m := NewManager(NewMemoryHistoryRepository()).WithMessageLog(log)
	s := m.Get(context.Background(), "u1")

	_, err := s.Ask(context.Background(), &fakeChatter{reply: "answer", delay: 5 * time.Millisecond}, "question")
	require.NoError(t, err)
	require.Len(t, log.entries, 2)
	require.Equal(t, SenderUser, log.entries[0].Sender)
	require.Equal(t, "question", log.entries[0].Text)
	require.Equal(t, SenderBot, log.entries[1].Sender)

	// logged timestamps carry the moment each side was spoken, so ordering
	// survives in chat_messages
	msgs := s.Messages()
	require.Equal(t, msgs[0].Timestamp, log.entries[0].Timestamp)
	require.Equal(t, msgs[1].Timestamp, log.entries[1].Timestamp)
	require.True(t, log.entries[0].Timestamp.Before(log.entries[1].Timestamp))
}

func TestManager_SessionPerUser(t *testing.T) {
	m := NewManager(NewMemoryHistoryRepository())
	ctx := context.Background()
	a := m.Get(ctx, "a")
	b := m.Get(ctx, "b")
	require.NotSame(t, a, b)
	require.Same(t, a, m.Get(ctx, "a"))
}
