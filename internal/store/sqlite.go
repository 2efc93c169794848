package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kindred-ai/kindred/internal/domain"
)

// SQLiteStore is the local fallback ProfileStore used when no DATABASE_URL
// is configured. Same shape as the Postgres store with JSON text columns;
// factor similarity is computed in Go instead of in the database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		id                   TEXT PRIMARY KEY,
		session_id           TEXT NOT NULL UNIQUE,
		conversation_history TEXT NOT NULL DEFAULT '[]',
		evaluation           TEXT NOT NULL,
		factors              TEXT,
		created_at           TEXT NOT NULL,
		last_interaction     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_profiles_created ON user_profiles(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Create(ctx context.Context, p *domain.UserProfile) error {
	history, err := json.Marshal(p.ConversationHistory)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	eval, err := json.Marshal(p.Evaluation)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.LastInteraction = now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_profiles (id, session_id, conversation_history, evaluation, created_at, last_interaction)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.SessionID, string(history), string(eval),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *SQLiteStore) GetBySessionID(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, conversation_history, evaluation, factors, created_at, last_interaction
		 FROM user_profiles WHERE session_id = ?`, sessionID)

	p, err := scanSQLiteProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, conversation_history, evaluation, factors, created_at, last_interaction
		 FROM user_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		p, err := scanSQLiteProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (s *SQLiteStore) AppendMessage(ctx context.Context, sessionID string, m domain.ChatMessage) error {
	p, err := s.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	p.ConversationHistory = append(p.ConversationHistory, m)
	history, err := json.Marshal(p.ConversationHistory)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE user_profiles SET conversation_history = ?, last_interaction = ? WHERE session_id = ?`,
		string(history), time.Now().UTC().Format(time.RFC3339Nano), sessionID)
	return err
}

func (s *SQLiteStore) UpdateEvaluation(ctx context.Context, sessionID string, eval domain.Evaluation, factors map[string]float64) error {
	evalJSON, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	var factorsJSON any
	if len(factors) > 0 {
		b, err := json.Marshal(factors)
		if err != nil {
			return fmt.Errorf("marshal factors: %w", err)
		}
		factorsJSON = string(b)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE user_profiles
		 SET evaluation = ?, factors = COALESCE(?, factors), last_interaction = ?
		 WHERE session_id = ?`,
		string(evalJSON), factorsJSON, time.Now().UTC().Format(time.RFC3339Nano), sessionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ClearHistory(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_profiles SET conversation_history = '[]', last_interaction = ? WHERE session_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), sessionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) FindSimilar(ctx context.Context, sessionID string, limit int) ([]domain.ProfileWithScore, error) {
	if limit <= 0 {
		limit = 5
	}

	target, err := s.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(target.Factors) == 0 {
		return nil, ErrNoEvaluation
	}
	targetVec := domain.FactorVector(target.Factors)

	profiles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.ProfileWithScore
	for _, p := range profiles {
		if p.SessionID == sessionID || len(p.Factors) == 0 {
			continue
		}
		score := cosineSimilarity(targetVec, domain.FactorVector(p.Factors))
		results = append(results, domain.ProfileWithScore{UserProfile: p, Score: score})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

func scanSQLiteProfile(scan func(dest ...any) error) (*domain.UserProfile, error) {
	var (
		p         domain.UserProfile
		id        string
		history   string
		eval      string
		factors   sql.NullString
		createdAt string
		lastAt    string
	)
	if err := scan(&id, &p.SessionID, &history, &eval, &factors, &createdAt, &lastAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse profile id: %w", err)
	}
	p.ID = parsed

	if err := json.Unmarshal([]byte(history), &p.ConversationHistory); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	if err := json.Unmarshal([]byte(eval), &p.Evaluation); err != nil {
		return nil, fmt.Errorf("unmarshal evaluation: %w", err)
	}
	if factors.Valid && factors.String != "" {
		if err := json.Unmarshal([]byte(factors.String), &p.Factors); err != nil {
			return nil, fmt.Errorf("unmarshal factors: %w", err)
		}
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.LastInteraction, err = time.Parse(time.RFC3339Nano, lastAt); err != nil {
		return nil, fmt.Errorf("parse last_interaction: %w", err)
	}
	return &p, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
