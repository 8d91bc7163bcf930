// Package services contains application services for the Lightway client.
// They combine the remote API with the local ledger.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/client/client"
	"github.com/dmitrijs2005/lightway/internal/client/models"
	"github.com/dmitrijs2005/lightway/internal/client/repositories/letters"
	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/timex"
)

// LetterService defines the letter operations of the CLI.
//
// Contract:
//   - Seal: send a letter that opens at openAt and remember it locally.
//   - Void: send a letter nobody will ever read.
//   - Open: fetch a letter's plaintext once its open date has passed.
//   - Openable: letters whose time has come, server-wide.
//   - Mine: letters sealed from this machine, from the local ledger.
type LetterService interface {
	Ping(ctx context.Context) (*api.PingResponse, error)
	Seal(ctx context.Context, content, title string, openAt time.Time) (*api.CreateLetterResponse, error)
	Void(ctx context.Context, content, title string) (*api.CreateLetterResponse, error)
	Open(ctx context.Context, id string) (*api.OpenLetterResponse, error)
	Openable(ctx context.Context) ([]api.LetterSummary, error)
	Mine(ctx context.Context) ([]*models.SealedLetter, error)
}

type letterService struct {
	client client.Client
	ledger letters.Repository
	clock  timex.Clock
}

func NewLetterService(client client.Client, ledger letters.Repository, clock timex.Clock) LetterService {
	return &letterService{client: client, ledger: ledger, clock: clock}
}

func (s *letterService) Ping(ctx context.Context) (*api.PingResponse, error) {
	return s.client.Ping(ctx)
}

func (s *letterService) Seal(ctx context.Context, content, title string, openAt time.Time) (*api.CreateLetterResponse, error) {
	return s.send(ctx, content, title, openAt, false)
}

func (s *letterService) Void(ctx context.Context, content, title string) (*api.CreateLetterResponse, error) {
	return s.send(ctx, content, title, s.clock.Now(), true)
}

func (s *letterService) send(ctx context.Context, content, title string, openAt time.Time, void bool) (*api.CreateLetterResponse, error) {
	resp, err := s.client.CreateLetter(ctx, content, title, openAt, void)
	if err != nil {
		return nil, err
	}

	l := &models.SealedLetter{
		ID:         resp.ID,
		Title:      title,
		OpenAt:     resp.OpenAt,
		SealedAt:   s.clock.Now(),
		SendToVoid: resp.SendToVoid,
	}
	if err := s.ledger.Add(ctx, l); err != nil {
		return resp, fmt.Errorf("letter %s was sent but not recorded locally: %w", resp.ID, err)
	}

	return resp, nil
}

// Open fetches the letter and, when it is in the local ledger, records
// when it was first opened.
func (s *letterService) Open(ctx context.Context, id string) (*api.OpenLetterResponse, error) {
	resp, err := s.client.OpenLetter(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.MarkOpened(ctx, resp.ID, resp.OpenedAt); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return resp, fmt.Errorf("record opening: %w", err)
	}
	return resp, nil
}

func (s *letterService) Openable(ctx context.Context) ([]api.LetterSummary, error) {
	return s.client.ListOpenableLetters(ctx)
}

func (s *letterService) Mine(ctx context.Context) ([]*models.SealedLetter, error) {
	return s.ledger.List(ctx)
}
