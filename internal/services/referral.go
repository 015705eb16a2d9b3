package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xperttutor/user-service/internal/repository"
)

// ReferralService maintains the referral graph invariant: each user is a child
// of at most one parent, determined by its onboard code.
type ReferralService struct {
	repo repository.UserRepository
	log  *zap.Logger
}

func NewReferralService(repo repository.UserRepository, log *zap.Logger) *ReferralService {
	return &ReferralService{repo: repo, log: log}
}

// Link appends childID to the children of the user whose referId equals
// onboardCode. When the child already sits in some parent's children list the
// call is a no-op reported as ErrAlreadyLinked; an unknown code is
// ErrInvalidReferralCode and mutates nothing.
//
// The existence check and the append are two separate store round-trips, not
// one atomic edge insertion. Concurrent links for the same child can both pass
// the check; exactly-once linking under races is not guaranteed.
func (s *ReferralService) Link(ctx context.Context, childID, onboardCode string) error {
	_, err := s.repo.FindParentOf(ctx, childID)
	if err == nil {
		return ErrAlreadyLinked
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	parent, err := s.repo.PushChild(ctx, onboardCode, childID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrInvalidReferralCode
	}
	if err != nil {
		return err
	}
	s.log.Info("referral linked",
		zap.String("child", childID),
		zap.String("parent", parent.ID.Hex()),
		zap.String("referId", onboardCode),
	)
	return nil
}
