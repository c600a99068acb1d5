package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/inclusions-zone/mailhub-backend/internal/errors"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
)

// Decisions a reviewer can take on a suggested action.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ActionService lists suggested actions and executes review decisions
type ActionService interface {
	List(ctx context.Context, filter repository.ActionFilter) ([]models.ActionView, error)
	// Decide approves or rejects a suggested action. Approving runs the
	// applier first; the action only becomes applied when the side effect
	// succeeded. Deciding an already decided action fails with
	// ErrNotActionable and changes nothing.
	Decide(ctx context.Context, id uint, decision, actor string) (*models.EmailAction, error)
}

// actionService implements ActionService
type actionService struct {
	actions  repository.ActionRepository
	messages repository.MessageRepository
	applier  Applier
	logger   *slog.Logger
}

// NewActionService creates a new ActionService instance
func NewActionService(actions repository.ActionRepository, messages repository.MessageRepository, applier Applier, logger *slog.Logger) ActionService {
	return &actionService{
		actions:  actions,
		messages: messages,
		applier:  applier,
		logger:   logger,
	}
}

func (s *actionService) List(ctx context.Context, filter repository.ActionFilter) ([]models.ActionView, error) {
	return s.actions.ListViews(ctx, filter)
}

func (s *actionService) Decide(ctx context.Context, id uint, decision, actor string) (*models.EmailAction, error) {
	action, err := s.actions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load action: %w", err)
	}

	if action.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: action %d is already %s", apperrors.ErrNotActionable, id, action.Status)
	}

	switch decision {
	case DecisionApprove:
		return s.approve(ctx, action, actor)
	case DecisionReject:
		return s.reject(ctx, action, actor)
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrInvalidInput, decision)
	}
}

func (s *actionService) approve(ctx context.Context, action *models.EmailAction, actor string) (*models.EmailAction, error) {
	message, err := s.messages.GetByID(ctx, action.EmailMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load message for action %d: %w", action.ID, err)
	}

	// Apply first; on failure the action stays suggested and can be retried
	// or rejected later.
	result, err := s.applier.Apply(ctx, action, message)
	if err != nil {
		s.logger.Warn("apply failed",
			slog.Uint64("action_id", uint64(action.ID)),
			slog.String("kind", action.Kind),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.actions.MarkApplied(ctx, action.ID, actor, result.ResultType, result.ResultID); err != nil {
		if errors.Is(err, repository.ErrNotActionable) {
			// Lost a race with a concurrent decision. The side effect already
			// ran, which is why apply is kept idempotent per kind.
			return nil, apperrors.ErrNotActionable
		}
		return nil, fmt.Errorf("failed to mark action applied: %w", err)
	}

	s.logger.Info("action applied",
		slog.Uint64("action_id", uint64(action.ID)),
		slog.String("kind", action.Kind),
		slog.String("actor", actor),
		slog.String("result_type", result.ResultType),
		slog.Uint64("result_id", uint64(result.ResultID)))

	return s.actions.GetByID(ctx, action.ID)
}

func (s *actionService) reject(ctx context.Context, action *models.EmailAction, actor string) (*models.EmailAction, error) {
	if err := s.actions.MarkRejected(ctx, action.ID, actor); err != nil {
		if errors.Is(err, repository.ErrNotActionable) {
			return nil, apperrors.ErrNotActionable
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark action rejected: %w", err)
	}

	s.logger.Info("action rejected",
		slog.Uint64("action_id", uint64(action.ID)),
		slog.String("kind", action.Kind),
		slog.String("actor", actor))

	return s.actions.GetByID(ctx, action.ID)
}
