package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "penledger/pkg/domain"
	"penledger/pkg/requestcontext"
)

func TestPublisherEmitAndList(t *testing.T) {
	ctx := context.Background()
	pub := NewPublisher(NewInMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	actor := id.AccountID(uuid.New())
	subject := id.AccountID(uuid.New())

	pub.Emit(ctx, Event{Actor: actor, Action: "register_company", Subject: subject, Outcome: OutcomeOK})

	t.Run("trail matches actor and subject", func(t *testing.T) {
		byActor, err := pub.List(ctx, actor)
		require.NoError(t, err)
		require.Len(t, byActor, 1)
		assert.Equal(t, "register_company", byActor[0].Action)

		bySubject, err := pub.List(ctx, subject)
		require.NoError(t, err)
		assert.Len(t, bySubject, 1)
	})

	t.Run("unrelated account sees nothing", func(t *testing.T) {
		events, err := pub.List(ctx, id.AccountID(uuid.New()))
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestPublisherStampsRequestTime(t *testing.T) {
	pub := NewPublisher(NewInMemoryStore(), nil)

	pinned := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), pinned)

	actor := id.AccountID(uuid.New())
	pub.Emit(ctx, Event{Actor: actor, Action: "initiate_payout", Outcome: OutcomeOK})

	events, err := pub.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, pinned, events[0].Timestamp)
}
