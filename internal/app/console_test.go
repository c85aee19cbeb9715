package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/marina/internal/adapters/memory"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/ctxutil"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

func newTestConsole(h *harness, deps ConsoleDeps) *ConsoleImpl {
	deps.Router = h.router
	deps.Applier = h.applier
	deps.State = h.store
	return NewConsole(deps)
}

func TestConsole_AppliesAndPersists(t *testing.T) {
	h := newHarness(t)
	slots := newMockSlots()
	audit := &mockAudit{}
	c := newTestConsole(h, ConsoleDeps{Slots: slots, Audit: audit})

	res, err := c.Handle(context.Background(), primary.Request{Text: "S/Y Phisedelia is arriving", User: testCaptain}, nil)
	require.NoError(t, err)

	assert.False(t, res.Fallback)
	assert.Equal(t, 3, res.Applied) // berth, tender, movement
	assert.Equal(t, 6, slots.saves)

	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, "cpt-07", rec.ActorID)
	assert.Equal(t, "arrival", rec.Rule)
	assert.Equal(t, "ARRIVAL", rec.Operation)
	assert.NotEmpty(t, rec.ID)
	assert.Contains(t, rec.Actions, ActArrivalApproved)
	assert.Zero(t, rec.ErrorCount)
}

func TestConsole_PersistsDirectStoreWrites(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, restored *memory.Store)
	}{
		{
			name: "vessel registration",
			text: `Register vessel "Sea Breeze" IMO 9876543 LOA 22m`,
			check: func(t *testing.T, restored *memory.Store) {
				v, err := restored.Fleet().GetByIMO(context.Background(), "9876543")
				require.NoError(t, err)
				assert.Equal(t, "Sea Breeze", v.Name)
			},
		},
		{
			name: "invoice charge",
			text: "Create an invoice for M/Y Blue Horizon amount 300 EUR",
			check: func(t *testing.T, restored *memory.Store) {
				entry, err := restored.Ledger().Get(context.Background(), models.NormalizeName("M/Y Blue Horizon"))
				require.NoError(t, err)
				assert.Equal(t, 1150.0, entry.Balance)
			},
		},
		{
			name: "service booking",
			text: "Schedule engine service for S/Y Karayel on 2025-12-01",
			check: func(t *testing.T, restored *memory.Store) {
				jobs, err := restored.Jobs().List(context.Background())
				require.NoError(t, err)
				last := jobs[len(jobs)-1]
				assert.Equal(t, "JOB-1026", last.ID)
				assert.Equal(t, "S/Y Karayel", last.VesselName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			slots := newMockSlots()
			c := newTestConsole(h, ConsoleDeps{Slots: slots})

			res, err := c.Handle(context.Background(), primary.Request{Text: tt.text, User: testGM}, nil)
			require.NoError(t, err)
			require.Equal(t, 0, effects.CountErrors(res.Traces), res.Text)

			assert.True(t, res.Mutated)
			assert.Positive(t, slots.saves)

			restored := memory.NewSeeded()
			_, err = LoadState(context.Background(), slots, restored)
			require.NoError(t, err)
			tt.check(t, restored)
		})
	}
}

func TestConsole_DeniedRequestIsNotPersisted(t *testing.T) {
	h := newHarness(t)
	slots := newMockSlots()
	audit := &mockAudit{}
	c := newTestConsole(h, ConsoleDeps{Slots: slots, Audit: audit})

	res, err := c.Handle(context.Background(), primary.Request{Text: "run the daily settlement", User: testGuest}, nil)
	require.NoError(t, err)

	assert.True(t, res.Denied)
	assert.Zero(t, res.Applied)
	assert.Zero(t, slots.saves)
	require.Len(t, audit.records, 1)
	assert.True(t, audit.records[0].Denied)
	assert.Equal(t, 1, audit.records[0].ErrorCount)
}

func TestConsole_ActorFromContextWins(t *testing.T) {
	h := newHarness(t)
	audit := &mockAudit{}
	c := newTestConsole(h, ConsoleDeps{Audit: audit})

	ctx := ctxutil.WithRequestID(ctxutil.WithActorID(context.Background(), "bridge-terminal"), "req-42")
	_, err := c.Handle(ctx, primary.Request{Text: "where is the gym", User: testGuest}, nil)
	require.NoError(t, err)

	require.Len(t, audit.records, 1)
	assert.Equal(t, "bridge-terminal", audit.records[0].ActorID)
	assert.Equal(t, "req-42", audit.records[0].ID)
}

func TestConsole_PersistFailure(t *testing.T) {
	h := newHarness(t)
	slots := newMockSlots()
	slots.saveErr = errors.New("disk full")
	c := newTestConsole(h, ConsoleDeps{Slots: slots})

	_, err := c.Handle(context.Background(), primary.Request{Text: "S/Y Phisedelia is arriving", User: testCaptain}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestConsole_OfflineFallback(t *testing.T) {
	h := newHarness(t)
	c := newTestConsole(h, ConsoleDeps{})

	var streamed []string
	res, err := c.Handle(context.Background(), primary.Request{Text: "tell me a sea shanty", User: testGuest}, func(s string) {
		streamed = append(streamed, s)
	})
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	assert.Equal(t, OfflineChatText, res.Text)
	assert.Equal(t, []string{OfflineChatText}, streamed)
}

func TestConsole_ChatFallbackStreamsAndCites(t *testing.T) {
	h := newHarness(t)
	chat := &mockChat{chunks: []secondary.ChatChunk{
		{Text: "Fair winds "},
		{Text: "to you.", Citations: []secondary.Citation{{URI: "https://example.org/a", Title: "A"}}},
		{Citations: []secondary.Citation{{URI: "https://example.org/a", Title: "A"}, {URI: "https://example.org/b"}}},
	}}
	c := newTestConsole(h, ConsoleDeps{Chat: chat, ChatCfg: ChatSettings{Model: "test-model", UseSearch: true}})

	var streamed string
	res, err := c.Handle(context.Background(), primary.Request{Text: "tell me a sea shanty", User: testGuest}, func(s string) {
		streamed += s
	})
	require.NoError(t, err)

	assert.Equal(t, "Fair winds to you.", res.Text)
	assert.Equal(t, res.Text, streamed)
	require.Len(t, res.Citations, 2)
	assert.Equal(t, "https://example.org/b", res.Citations[1].URI)

	assert.Equal(t, "test-model", chat.last.Model)
	assert.True(t, chat.last.UseSearch)
	require.Len(t, chat.last.History, 1)
	assert.Equal(t, "user", chat.last.History[0].Role)

	hist := c.History()
	require.Len(t, hist, 2)
	assert.Equal(t, "model", hist[1].Role)
}

func TestConsole_ChatFailureKeepsPartialText(t *testing.T) {
	h := newHarness(t)

	t.Run("no text falls back to offline message", func(t *testing.T) {
		c := newTestConsole(h, ConsoleDeps{Chat: &mockChat{err: errors.New("quota exceeded")}})

		res, err := c.Handle(context.Background(), primary.Request{Text: "tell me a sea shanty", User: testGuest}, nil)
		require.NoError(t, err)

		assert.Equal(t, OfflineChatText, res.Text)
		assert.True(t, res.Traces[len(res.Traces)-1].IsError)
	})

	t.Run("partial text is kept", func(t *testing.T) {
		chat := &mockChat{chunks: []secondary.ChatChunk{{Text: "Half a"}}, err: errors.New("stream reset")}
		c := newTestConsole(h, ConsoleDeps{Chat: chat})

		res, err := c.Handle(context.Background(), primary.Request{Text: "tell me a sea shanty", User: testGuest}, nil)
		require.NoError(t, err)

		assert.Equal(t, "Half a", res.Text)
	})
}

func TestConsole_LiveTurnsEnterHistory(t *testing.T) {
	h := newHarness(t)
	c := newTestConsole(h, ConsoleDeps{})
	live := &mockLive{}

	c.AttachLive(live)
	require.NotNil(t, live.onTurn)
	live.onTurn("radio check", "loud and clear")

	hist := c.History()
	require.Len(t, hist, 2)
	assert.Equal(t, secondary.ChatMessage{Role: "user", Text: "radio check"}, hist[0])
	assert.Equal(t, secondary.ChatMessage{Role: "model", Text: "loud and clear"}, hist[1])
}

func TestConsole_HistoryIsBounded(t *testing.T) {
	h := newHarness(t)
	c := newTestConsole(h, ConsoleDeps{})

	for i := 0; i < MaxHistory; i++ {
		c.remember("q", "a")
	}

	assert.Len(t, c.History(), MaxHistory)
}
