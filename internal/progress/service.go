package progress

import (
	"fmt"
	"time"

	"github.com/quizhive/backend/internal/apperr"
	"github.com/quizhive/backend/internal/engine"
	"github.com/quizhive/backend/internal/models"
)

type Service struct {
	store  *Store
	engine *engine.Engine
}

func NewService(store *Store, eng *engine.Engine) *Service {
	return &Service{store: store, engine: eng}
}

// Store exposes the underlying store for the submission transaction,
// which spans the attempts and user_progress tables.
func (s *Service) Store() *Store {
	return s.store
}

// GetProgress builds the dashboard view. A streak whose last activity
// is more than a day old is lazily zeroed here, so the dashboard never
// shows a streak the user has already lost.
func (s *Service) GetProgress(userID int64) (*models.ProgressResponse, error) {
	prog, err := s.store.GetOrCreate(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	reset := engine.ResetStaleStreak(*prog, time.Now())
	if reset.WasReset {
		if err := s.store.ZeroStaleStreak(userID); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	attempts, perfects, err := s.store.CountAttemptStats(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	resp := &models.ProgressResponse{
		TotalXP:        prog.TotalXP,
		CurrentStreak:  reset.CurrentStreak,
		BestStreak:     prog.BestStreak,
		AttemptsTotal:  attempts,
		PerfectsTotal:  perfects,
		StreakWasReset: reset.WasReset,
	}
	if prog.LastActivityDate != nil {
		resp.LastActivity = prog.LastActivityDate.Format("2006-01-02")
	}
	return resp, nil
}

// RecomputeAchievements recounts the user's attempt history against the
// catalog and upserts one row per achievement. Idempotent over an
// unchanged history; first completion timestamps survive reruns.
func (s *Service) RecomputeAchievements(userID int64) error {
	catalog, err := s.store.GetAchievementCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	history, err := s.store.GetAttemptSummaries(userID)
	if err != nil {
		return fmt.Errorf("load attempt history: %w", err)
	}

	updates := s.engine.RecomputeAchievements(history, catalog, time.Now())
	if err := s.store.UpsertAchievementProgress(userID, updates); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (s *Service) GetAchievements(userID int64) (*models.AchievementsResponse, error) {
	views, err := s.store.GetUserAchievements(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &models.AchievementsResponse{Achievements: views}, nil
}

// GetLeaderboard returns the top users by lifetime XP, with the
// caller's own rank appended when they fall outside the page.
func (s *Service) GetLeaderboard(userID int64, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	entries, err := s.store.GetLeaderboard(limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	found := false
	for i := range entries {
		if entries[i].UserID == userID {
			entries[i].IsCurrentUser = true
			found = true
		}
	}

	var currentUser *models.LeaderboardEntry
	if !found {
		rank, err := s.store.GetUserRank(userID)
		if err == nil && rank > 0 {
			if prog, err := s.store.GetOrCreate(userID); err == nil {
				currentUser = &models.LeaderboardEntry{
					Rank:          rank,
					UserID:        userID,
					TotalXP:       prog.TotalXP,
					CurrentStreak: prog.CurrentStreak,
					IsCurrentUser: true,
				}
			}
		}
	}

	return &models.LeaderboardResponse{Entries: entries, CurrentUser: currentUser}, nil
}
