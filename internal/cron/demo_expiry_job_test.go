package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/db/models"
)

type stubDemoUserRepo struct {
	users       []models.User
	listErr     error
	failFor     map[uuid.UUID]error
	deactivated []uuid.UUID
}

func (s *stubDemoUserRepo) ListExpiredDemoUsers(ctx context.Context, cutoff time.Time, limit int) ([]models.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.users, nil
}

func (s *stubDemoUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err, ok := s.failFor[id]; ok {
		return err
	}
	s.deactivated = append(s.deactivated, id)
	return nil
}

func TestDemoExpiryJobDeactivatesExpiredUsers(t *testing.T) {
	repo := &stubDemoUserRepo{
		users: []models.User{
			{ID: uuid.New(), IsDemoUser: true},
			{ID: uuid.New(), IsDemoUser: true},
		},
	}
	job, err := NewDemoExpiryJob(DemoExpiryJobParams{Logger: testLogger(), UserRepo: repo})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(repo.deactivated) != 2 {
		t.Fatalf("expected 2 deactivations, got %d", len(repo.deactivated))
	}
}

func TestDemoExpiryJobContinuesPastFailures(t *testing.T) {
	bad := uuid.New()
	good := uuid.New()
	repo := &stubDemoUserRepo{
		users: []models.User{
			{ID: bad, IsDemoUser: true},
			{ID: good, IsDemoUser: true},
		},
		failFor: map[uuid.UUID]error{bad: errors.New("db down")},
	}
	job, _ := NewDemoExpiryJob(DemoExpiryJobParams{Logger: testLogger(), UserRepo: repo})

	err := job.Run(context.Background())
	if err == nil {
		t.Fatalf("expected combined error")
	}
	if len(repo.deactivated) != 1 || repo.deactivated[0] != good {
		t.Fatalf("expected remaining user deactivated despite failure")
	}
}

func TestDemoExpiryJobPropagatesListError(t *testing.T) {
	repo := &stubDemoUserRepo{listErr: errors.New("unreachable")}
	job, _ := NewDemoExpiryJob(DemoExpiryJobParams{Logger: testLogger(), UserRepo: repo})

	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected error from list failure")
	}
}
