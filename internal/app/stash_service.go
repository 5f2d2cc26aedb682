package app

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"linkstash/internal/model"
	"linkstash/internal/platform/rabbitmq"
	"linkstash/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyURL     = errors.New("url is empty")
)

type StashEventPublisher interface {
	Publish(ctx context.Context, event rabbitmq.StashEvent) error
}

// StashService runs the stash pipeline: summarize the URL, persist the row,
// announce the change. The whole pipeline is synchronous within the request.
type StashService struct {
	stashRepo  *repository.StashRepository
	summarizer *SummaryService
	events     StashEventPublisher
}

func NewStashService(stashRepo *repository.StashRepository, summarizer *SummaryService, events StashEventPublisher) *StashService {
	return &StashService{
		stashRepo:  stashRepo,
		summarizer: summarizer,
		events:     events,
	}
}

// StashURL summarizes and saves the URL for the user. Fetch and AI failures
// still produce a saved row carrying sentinel summary/tags; only a storage
// failure is an error.
func (s *StashService) StashURL(ctx context.Context, userID, url string) (*model.Stash, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if url == "" {
		return nil, ErrEmptyURL
	}

	result := s.summarizer.Summarize(ctx, url)

	stash := &model.Stash{
		URLID:   uuid.NewString(),
		UserID:  userID,
		URL:     url,
		Summary: result.Summary,
		Tags:    result.Tags,
	}
	if err := s.stashRepo.Create(stash); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, rabbitmq.StashEvent{
		Event:  "stash.created",
		URLID:  stash.URLID,
		UserID: stash.UserID,
		URL:    stash.URL,
	})
	return stash, nil
}

func (s *StashService) ListStashes(userID string) ([]model.Stash, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.stashRepo.ListByUserID(userID)
}

// DeleteStash removes the stash by id alone; ownership is not checked, and
// a missing id is not an error.
func (s *StashService) DeleteStash(ctx context.Context, urlID string) error {
	if urlID == "" {
		return ErrInvalidInput
	}
	if err := s.stashRepo.DeleteByID(urlID); err != nil {
		return err
	}

	s.publishEvent(ctx, rabbitmq.StashEvent{
		Event: "stash.deleted",
		URLID: urlID,
	})
	return nil
}

// publishEvent is best-effort: the broker is optional and a publish failure
// never surfaces to the request.
func (s *StashService) publishEvent(ctx context.Context, event rabbitmq.StashEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("publish %s event failed: %v", event.Event, err)
	}
}
