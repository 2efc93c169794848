package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/kindred-ai/kindred/internal/domain"
)

// ProfileStore persists user profiles in Postgres. Conversation history and
// evaluation state live in JSONB; the eight factor scores are additionally
// stored as a vector for similarity lookups.
type ProfileStore struct {
	db *pgxpool.Pool
}

func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Create(ctx context.Context, p *domain.UserProfile) error {
	history, err := json.Marshal(p.ConversationHistory)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	eval, err := json.Marshal(p.Evaluation)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO user_profiles (id, session_id, conversation_history, evaluation)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, last_interaction`,
		p.ID, p.SessionID, history, eval,
	).Scan(&p.CreatedAt, &p.LastInteraction)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *ProfileStore) GetBySessionID(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx,
		`SELECT id, session_id, conversation_history, evaluation, factors, created_at, last_interaction
		 FROM user_profiles WHERE session_id = $1`,
		sessionID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfileStore) List(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, conversation_history, evaluation, factors, created_at, last_interaction
		 FROM user_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// AppendMessage appends to the JSONB history in place and touches
// last_interaction, avoiding a read-modify-write of the whole profile.
func (s *ProfileStore) AppendMessage(ctx context.Context, sessionID string, m domain.ChatMessage) error {
	msg, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE user_profiles
		 SET conversation_history = conversation_history || $2::jsonb,
		     last_interaction = NOW()
		 WHERE session_id = $1`,
		sessionID, msg)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProfileStore) UpdateEvaluation(ctx context.Context, sessionID string, eval domain.Evaluation, factors map[string]float64) error {
	evalJSON, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	var factorsJSON []byte
	var vec *pgvector.Vector
	if len(factors) > 0 {
		factorsJSON, err = json.Marshal(factors)
		if err != nil {
			return fmt.Errorf("marshal factors: %w", err)
		}
		v := pgvector.NewVector(domain.FactorVector(factors))
		vec = &v
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE user_profiles
		 SET evaluation = $2,
		     factors = COALESCE($3, factors),
		     factor_vector = COALESCE($4, factor_vector),
		     last_interaction = NOW()
		 WHERE session_id = $1`,
		sessionID, evalJSON, factorsJSON, vec)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProfileStore) ClearHistory(ctx context.Context, sessionID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE user_profiles
		 SET conversation_history = '[]'::jsonb,
		     last_interaction = NOW()
		 WHERE session_id = $1`,
		sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindSimilar ranks other profiles by cosine similarity of their stored
// factor vectors against the given session's vector.
func (s *ProfileStore) FindSimilar(ctx context.Context, sessionID string, limit int) ([]domain.ProfileWithScore, error) {
	if limit <= 0 {
		limit = 5
	}

	var vec pgvector.Vector
	err := s.db.QueryRow(ctx,
		`SELECT factor_vector FROM user_profiles WHERE session_id = $1 AND factor_vector IS NOT NULL`,
		sessionID,
	).Scan(&vec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoEvaluation
		}
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, conversation_history, evaluation, factors, created_at, last_interaction,
		        1 - (factor_vector <=> $1) AS score
		 FROM user_profiles
		 WHERE session_id <> $2 AND factor_vector IS NOT NULL
		 ORDER BY factor_vector <=> $1
		 LIMIT $3`,
		vec, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ProfileWithScore
	for rows.Next() {
		var (
			p       domain.UserProfile
			history []byte
			eval    []byte
			factors []byte
			score   float64
		)
		if err := rows.Scan(&p.ID, &p.SessionID, &history, &eval, &factors, &p.CreatedAt, &p.LastInteraction, &score); err != nil {
			return nil, err
		}
		if err := unmarshalProfileColumns(&p, history, eval, factors); err != nil {
			return nil, err
		}
		results = append(results, domain.ProfileWithScore{UserProfile: p, Score: score})
	}
	return results, rows.Err()
}

func (s *ProfileStore) Close() {
	s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.UserProfile, error) {
	var (
		p       domain.UserProfile
		history []byte
		eval    []byte
		factors []byte
	)
	if err := row.Scan(&p.ID, &p.SessionID, &history, &eval, &factors, &p.CreatedAt, &p.LastInteraction); err != nil {
		return nil, err
	}
	if err := unmarshalProfileColumns(&p, history, eval, factors); err != nil {
		return nil, err
	}
	return &p, nil
}

func unmarshalProfileColumns(p *domain.UserProfile, history, eval, factors []byte) error {
	if err := json.Unmarshal(history, &p.ConversationHistory); err != nil {
		return fmt.Errorf("unmarshal history: %w", err)
	}
	if err := json.Unmarshal(eval, &p.Evaluation); err != nil {
		return fmt.Errorf("unmarshal evaluation: %w", err)
	}
	if len(factors) > 0 {
		if err := json.Unmarshal(factors, &p.Factors); err != nil {
			return fmt.Errorf("unmarshal factors: %w", err)
		}
	}
	return nil
}
