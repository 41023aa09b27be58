package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/quizhive/backend/internal/config"
)

func Connect(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS user_progress (
		user_id            BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		total_xp           BIGINT NOT NULL DEFAULT 0,
		current_streak     INT NOT NULL DEFAULT 0,
		best_streak        INT NOT NULL DEFAULT 0,
		last_activity_date DATE,
		created_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CHECK (current_streak <= best_streak)
	);

	CREATE TABLE IF NOT EXISTS quizzes (
		id                 BIGSERIAL PRIMARY KEY,
		title              VARCHAR(255) NOT NULL,
		description        TEXT,
		difficulty         VARCHAR(20) NOT NULL DEFAULT 'beginner',
		time_limit_seconds INT CHECK (time_limit_seconds > 0),
		created_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_quizzes_difficulty ON quizzes(difficulty);

	CREATE TABLE IF NOT EXISTS questions (
		id            BIGSERIAL PRIMARY KEY,
		quiz_id       BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		position      INT NOT NULL,
		title         TEXT NOT NULL,
		choices       JSONB NOT NULL,
		correct_index INT NOT NULL CHECK (correct_index >= 0),
		UNIQUE(quiz_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_questions_quiz ON questions(quiz_id, position);

	CREATE TABLE IF NOT EXISTS attempts (
		id                 BIGSERIAL PRIMARY KEY,
		user_id            BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		quiz_id            BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		answers            JSONB NOT NULL,
		score              INT NOT NULL,
		percentage         INT NOT NULL CHECK (percentage >= 0 AND percentage <= 100),
		is_completed       BOOLEAN NOT NULL DEFAULT FALSE,
		time_taken_seconds INT NOT NULL DEFAULT 0 CHECK (time_taken_seconds >= 0),
		xp_earned          INT NOT NULL,
		created_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_attempts_quiz ON attempts(quiz_id);

	CREATE TABLE IF NOT EXISTS achievements (
		id               VARCHAR(100) PRIMARY KEY,
		name             VARCHAR(255) NOT NULL,
		description      TEXT NOT NULL,
		requirement_kind VARCHAR(50) NOT NULL,
		bronze_threshold INT NOT NULL,
		silver_threshold INT NOT NULL,
		gold_threshold   INT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS achievement_progress (
		user_id        BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		achievement_id VARCHAR(100) NOT NULL REFERENCES achievements(id) ON DELETE CASCADE,
		progress       INT NOT NULL DEFAULT 0,
		completed      BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at   TIMESTAMP WITH TIME ZONE,
		updated_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		PRIMARY KEY (user_id, achievement_id)
	);

	CREATE INDEX IF NOT EXISTS idx_achievement_progress_user ON achievement_progress(user_id);

	CREATE TABLE IF NOT EXISTS xp_events (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_type VARCHAR(50) NOT NULL,
		xp_amount  INT NOT NULL,
		metadata   JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err := seedAchievements(db); err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}

	return nil
}

// seedAchievements inserts the static achievement catalog. Idempotent:
// existing rows are left as-is.
func seedAchievements(db *sql.DB) error {
	seeds := []struct {
		id, name, description, kind string
		bronze, silver, gold        int
	}{
		{"quiz_explorer", "Quiz Explorer", "Complete quizzes", "total_attempts", 5, 25, 100},
		{"perfectionist", "Perfectionist", "Score 100% on quizzes", "perfect_scores", 3, 10, 50},
		{"speed_demon", "Speed Demon", "Finish timed quizzes in under 30% of the limit", "fast_completions", 3, 10, 25},
	}

	for _, s := range seeds {
		_, err := db.Exec(
			`INSERT INTO achievements (id, name, description, requirement_kind, bronze_threshold, silver_threshold, gold_threshold)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO NOTHING`,
			s.id, s.name, s.description, s.kind, s.bronze, s.silver, s.gold,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
