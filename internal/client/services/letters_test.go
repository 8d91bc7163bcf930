package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSeal_RecordsInLedger(t *testing.T) {
	openAt := testNow.Add(24 * time.Hour)
	c := &fakeClient{createLetterResp: &api.CreateLetterResponse{ID: "l1", OpenAt: openAt}}
	ledger := &fakeLedger{}
	s := NewLetterService(c, ledger, timex.Fixed(testNow))

	resp, err := s.Seal(context.Background(), "body", "title", openAt)
	require.NoError(t, err)
	assert.Equal(t, "l1", resp.ID)
	assert.False(t, c.gotVoid)

	require.Len(t, ledger.letters, 1)
	got := ledger.letters[0]
	assert.Equal(t, "l1", got.ID)
	assert.Equal(t, "title", got.Title)
	assert.True(t, got.OpenAt.Equal(openAt))
	assert.True(t, got.SealedAt.Equal(testNow))
}

func TestVoid_SendsNowAndFlag(t *testing.T) {
	c := &fakeClient{createLetterResp: &api.CreateLetterResponse{ID: "v1", SendToVoid: true, OpenAt: testNow}}
	ledger := &fakeLedger{}
	s := NewLetterService(c, ledger, timex.Fixed(testNow))

	_, err := s.Void(context.Background(), "goodbye", "")
	require.NoError(t, err)
	assert.True(t, c.gotVoid)
	assert.True(t, c.gotOpenAt.Equal(testNow))
	require.Len(t, ledger.letters, 1)
	assert.True(t, ledger.letters[0].SendToVoid)
}

func TestSeal_ServerErrorNotRecorded(t *testing.T) {
	c := &fakeClient{err: errors.New("rejected")}
	ledger := &fakeLedger{}
	s := NewLetterService(c, ledger, timex.Fixed(testNow))

	_, err := s.Seal(context.Background(), "body", "", testNow.Add(time.Hour))
	require.Error(t, err)
	assert.Empty(t, ledger.letters)
}

func TestSeal_LedgerErrorStillReturnsResponse(t *testing.T) {
	c := &fakeClient{createLetterResp: &api.CreateLetterResponse{ID: "l1"}}
	ledger := &fakeLedger{addErr: errors.New("disk full")}
	s := NewLetterService(c, ledger, timex.Fixed(testNow))

	resp, err := s.Seal(context.Background(), "body", "", testNow.Add(time.Hour))
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Contains(t, err.Error(), "l1")
}

func TestOpen_MarksOpenedWhenKnown(t *testing.T) {
	openedAt := testNow.Add(time.Hour)
	c := &fakeClient{
		createLetterResp: &api.CreateLetterResponse{ID: "l1", OpenAt: testNow},
		openResp:         &api.OpenLetterResponse{ID: "l1", Content: "body", OpenedAt: openedAt},
	}
	ledger := &fakeLedger{}
	s := NewLetterService(c, ledger, timex.Fixed(testNow))

	_, err := s.Seal(context.Background(), "body", "", testNow)
	require.NoError(t, err)

	resp, err := s.Open(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, "body", resp.Content)
	assert.True(t, ledger.opened["l1"].Equal(openedAt))
}

func TestOpen_ForeignLetter(t *testing.T) {
	c := &fakeClient{openResp: &api.OpenLetterResponse{ID: "elsewhere", Content: "hi"}}
	s := NewLetterService(c, &fakeLedger{}, timex.Fixed(testNow))

	resp, err := s.Open(context.Background(), "elsewhere")
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)
}

func TestOpenableAndMine(t *testing.T) {
	c := &fakeClient{
		createLetterResp: &api.CreateLetterResponse{ID: "mine"},
		openable:         []api.LetterSummary{{ID: "a"}, {ID: "b"}},
	}
	s := NewLetterService(c, &fakeLedger{}, timex.Fixed(testNow))

	openable, err := s.Openable(context.Background())
	require.NoError(t, err)
	assert.Len(t, openable, 2)

	_, err = s.Seal(context.Background(), "x", "", testNow.Add(time.Hour))
	require.NoError(t, err)

	mine, err := s.Mine(context.Background())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].ID)
}
