package progress

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/quizhive/backend/internal/engine"
	"github.com/quizhive/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const progressColumns = `user_id, total_xp, current_streak, best_streak, last_activity_date, created_at, updated_at`

// ── User Progress ───────────────────────────────────────

func (s *Store) GetOrCreate(userID int64) (*models.UserProgress, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_progress (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	var p models.UserProgress
	err = s.db.QueryRow(
		`SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.TotalXP, &p.CurrentStreak, &p.BestStreak, &p.LastActivityDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

// GetOrCreateForUpdate reads the user's progress row inside tx with a
// row lock. Concurrent submissions by the same user serialize here, so
// streak transitions and XP credits never interleave.
func (s *Store) GetOrCreateForUpdate(tx *sql.Tx, userID int64) (*models.UserProgress, error) {
	_, err := tx.Exec(
		`INSERT INTO user_progress (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	var p models.UserProgress
	err = tx.QueryRow(
		`SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&p.UserID, &p.TotalXP, &p.CurrentStreak, &p.BestStreak, &p.LastActivityDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("lock progress: %w", err)
	}
	return &p, nil
}

// ApplyAttempt credits XP and writes the streak transition inside the
// submission transaction.
func (s *Store) ApplyAttempt(tx *sql.Tx, userID int64, xpEarned int, upd engine.StreakUpdate) error {
	_, err := tx.Exec(
		`UPDATE user_progress SET
		    total_xp = total_xp + $2,
		    current_streak = $3, best_streak = $4, last_activity_date = $5,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, xpEarned, upd.CurrentStreak, upd.BestStreak, upd.LastActivityDate,
	)
	if err != nil {
		return fmt.Errorf("apply attempt: %w", err)
	}
	return nil
}

// ZeroStaleStreak persists a lazy streak reset. The WHERE clause keeps
// it idempotent and makes sure a submission that raced in between is
// not clobbered.
func (s *Store) ZeroStaleStreak(userID int64) error {
	_, err := s.db.Exec(
		`UPDATE user_progress SET current_streak = 0, updated_at = NOW()
		 WHERE user_id = $1
		   AND current_streak > 0
		   AND last_activity_date < CURRENT_DATE - 1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("zero stale streak: %w", err)
	}
	return nil
}

// ── Attempt Aggregates ──────────────────────────────────

// GetAttemptSummaries returns the user's full attempt history in the
// shape the achievement recount consumes.
func (s *Store) GetAttemptSummaries(userID int64) ([]models.AttemptSummary, error) {
	rows, err := s.db.Query(
		`SELECT a.percentage, a.time_taken_seconds, q.time_limit_seconds
		 FROM attempts a
		 JOIN quizzes q ON q.id = a.quiz_id
		 WHERE a.user_id = $1
		 ORDER BY a.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get attempt summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.AttemptSummary
	for rows.Next() {
		var sum models.AttemptSummary
		if err := rows.Scan(&sum.Percentage, &sum.TimeTakenSeconds, &sum.TimeLimitSeconds); err != nil {
			return nil, fmt.Errorf("scan attempt summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *Store) CountAttemptStats(userID int64) (attempts, perfects int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE percentage = 100)
		 FROM attempts WHERE user_id = $1`,
		userID,
	).Scan(&attempts, &perfects)
	if err != nil {
		return 0, 0, fmt.Errorf("count attempt stats: %w", err)
	}
	return attempts, perfects, nil
}

// ── Achievements ────────────────────────────────────────

func (s *Store) GetAchievementCatalog() ([]models.Achievement, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, requirement_kind, bronze_threshold, silver_threshold, gold_threshold
		 FROM achievements ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("get achievement catalog: %w", err)
	}
	defer rows.Close()

	var catalog []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.RequirementKind,
			&a.BronzeThreshold, &a.SilverThreshold, &a.GoldThreshold); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		catalog = append(catalog, a)
	}
	return catalog, rows.Err()
}

// UpsertAchievementProgress writes one recomputed row per (user,
// achievement). COALESCE on completed_at keeps the first completion
// timestamp: later recomputes never overwrite it.
func (s *Store) UpsertAchievementProgress(userID int64, updates []engine.AchievementUpdate) error {
	for _, u := range updates {
		_, err := s.db.Exec(
			`INSERT INTO achievement_progress (user_id, achievement_id, progress, completed, completed_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, NOW())
			 ON CONFLICT (user_id, achievement_id) DO UPDATE SET
			    progress = EXCLUDED.progress,
			    completed = EXCLUDED.completed,
			    completed_at = COALESCE(achievement_progress.completed_at, EXCLUDED.completed_at),
			    updated_at = NOW()`,
			userID, u.AchievementID, u.Progress, u.Completed, u.CompletedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert achievement %s: %w", u.AchievementID, err)
		}
	}
	return nil
}

func (s *Store) GetUserAchievements(userID int64) ([]models.AchievementView, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.name, a.description, a.requirement_kind,
		        a.bronze_threshold, a.silver_threshold, a.gold_threshold,
		        COALESCE(ap.progress, 0), COALESCE(ap.completed, FALSE), ap.completed_at
		 FROM achievements a
		 LEFT JOIN achievement_progress ap ON ap.achievement_id = a.id AND ap.user_id = $1
		 ORDER BY a.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get user achievements: %w", err)
	}
	defer rows.Close()

	var views []models.AchievementView
	for rows.Next() {
		var v models.AchievementView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.RequirementKind,
			&v.BronzeThreshold, &v.SilverThreshold, &v.GoldThreshold,
			&v.Progress, &v.Completed, &v.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan achievement view: %w", err)
		}
		views = append(views, v)
	}
	if views == nil {
		views = []models.AchievementView{}
	}
	return views, rows.Err()
}

// ── Leaderboard ─────────────────────────────────────────

func (s *Store) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, p.total_xp, p.current_streak,
		        ROW_NUMBER() OVER (ORDER BY p.total_xp DESC) as rank
		 FROM user_progress p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.total_xp > 0
		 ORDER BY p.total_xp DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var fullName string
		if err := rows.Scan(&e.UserID, &fullName, &e.TotalXP, &e.CurrentStreak, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.DisplayName = models.User{Name: fullName}.DisplayName()
		entries = append(entries, e)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, rows.Err()
}

func (s *Store) GetUserRank(userID int64) (int, error) {
	var rank int
	err := s.db.QueryRow(
		`SELECT COALESCE(
		    (SELECT rank FROM (
		        SELECT user_id, ROW_NUMBER() OVER (ORDER BY total_xp DESC) as rank
		        FROM user_progress WHERE total_xp > 0
		    ) r WHERE r.user_id = $1),
		    0
		)`,
		userID,
	).Scan(&rank)
	return rank, err
}

// ── XP Event Log ────────────────────────────────────────

// LogXPEvent appends to the XP audit trail. Best effort — callers log
// failures rather than failing the attempt.
func (s *Store) LogXPEvent(userID int64, eventType string, xpAmount int, metadata map[string]interface{}) error {
	var metaJSON *string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err == nil {
			str := string(b)
			metaJSON = &str
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO xp_events (user_id, event_type, xp_amount, metadata)
		 VALUES ($1, $2, $3, $4)`,
		userID, eventType, xpAmount, metaJSON,
	)
	return err
}
