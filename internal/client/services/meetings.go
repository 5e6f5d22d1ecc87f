package services

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync/internal/client/client"
	"github.com/eventsync/eventsync/internal/client/meetings"
	"github.com/eventsync/eventsync/internal/client/models"
)

// MeetingService reads the meeting list for the calendar and admin screens.
type MeetingService interface {
	List(ctx context.Context, q meetings.Query) ([]models.Meeting, error)
	StatusCounts(ctx context.Context) (map[string]int, error)
}

type meetingService struct {
	client client.Client
}

func NewMeetingService(c client.Client) MeetingService {
	return &meetingService{client: c}
}

func (s *meetingService) List(ctx context.Context, q meetings.Query) ([]models.Meeting, error) {
	ms, err := s.client.Meetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get meetings: %w", err)
	}
	return meetings.Apply(ms, q), nil
}

func (s *meetingService) StatusCounts(ctx context.Context) (map[string]int, error) {
	ms, err := s.client.Meetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get meetings: %w", err)
	}
	return meetings.CountByStatus(ms), nil
}
