package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "quizia_user")
	password := getEnv("DB_PASSWORD", "quizia_password")
	dbname := getEnv("DB_NAME", "quizia")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
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
		id         VARCHAR(36) PRIMARY KEY,
		email      VARCHAR(255) UNIQUE NOT NULL,
		name       VARCHAR(255) NOT NULL,
		password   VARCHAR(255) NOT NULL,
		role       VARCHAR(20) NOT NULL DEFAULT 'STUDENT',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS subjects (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) UNIQUE NOT NULL,
		description TEXT,
		icon        VARCHAR(10),
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS topics (
		id          BIGSERIAL PRIMARY KEY,
		subject_id  BIGINT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		name        VARCHAR(100) NOT NULL,
		description TEXT,
		sort_order  INT NOT NULL DEFAULT 0,
		user_id     VARCHAR(36),
		user_name   VARCHAR(255),
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(subject_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_topics_subject ON topics(subject_id);

	CREATE TABLE IF NOT EXISTS user_topic_progress (
		id              BIGSERIAL PRIMARY KEY,
		user_id         VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		topic_id        BIGINT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
		user_name       VARCHAR(255),
		subject_name    VARCHAR(100),
		current_level   INT NOT NULL DEFAULT 1,
		exercises_count INT NOT NULL DEFAULT 0,
		correct_count   INT NOT NULL DEFAULT 0,
		success_rate    INT NOT NULL DEFAULT 0 CHECK (success_rate >= 0 AND success_rate <= 100),
		is_mastered     BOOLEAN NOT NULL DEFAULT FALSE,
		mastered_at     TIMESTAMP WITH TIME ZONE,
		updated_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, topic_id)
	);

	CREATE INDEX IF NOT EXISTS idx_progress_user ON user_topic_progress(user_id);
	CREATE INDEX IF NOT EXISTS idx_progress_user_level ON user_topic_progress(user_id, current_level DESC);

	CREATE TABLE IF NOT EXISTS exercise_history (
		id             BIGSERIAL PRIMARY KEY,
		user_id        VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		topic_id       BIGINT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
		user_name      VARCHAR(255),
		level          INT NOT NULL,
		question       TEXT NOT NULL,
		user_answer    TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		is_correct     BOOLEAN NOT NULL,
		ai_feedback    TEXT,
		created_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_history_user ON exercise_history(user_id);
	CREATE INDEX IF NOT EXISTS idx_history_topic ON exercise_history(topic_id);

	CREATE TABLE IF NOT EXISTS quiz_sessions (
		id             BIGSERIAL PRIMARY KEY,
		user_id        VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject        VARCHAR(100) NOT NULL,
		level          INT NOT NULL,
		model          VARCHAR(100),
		academic_level VARCHAR(50),
		questions      TEXT NOT NULL,
		answers        TEXT NOT NULL,
		current_index  INT NOT NULL DEFAULT 0,
		updated_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, subject, level)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON quiz_sessions(user_id, updated_at DESC);

	CREATE TABLE IF NOT EXISTS chat_conversations (
		id         VARCHAR(36) PRIMARY KEY,
		user_id    VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type       VARCHAR(20) NOT NULL DEFAULT 'chat',
		model      VARCHAR(100),
		tokens_in  INT NOT NULL DEFAULT 0,
		tokens_out INT NOT NULL DEFAULT 0,
		title      VARCHAR(255),
		messages   TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_conversations_user ON chat_conversations(user_id, updated_at DESC);
	CREATE INDEX IF NOT EXISTS idx_conversations_recent ON chat_conversations(created_at DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent column additions for databases created before these fields
	alterStatements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS role VARCHAR(20) NOT NULL DEFAULT 'STUDENT'`,
		`ALTER TABLE subjects ADD COLUMN IF NOT EXISTS icon VARCHAR(10)`,
		`ALTER TABLE quiz_sessions ADD COLUMN IF NOT EXISTS academic_level VARCHAR(50)`,
		`ALTER TABLE chat_conversations ADD COLUMN IF NOT EXISTS type VARCHAR(20) NOT NULL DEFAULT 'chat'`,
	}

	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
