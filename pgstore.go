package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	games_played INT NOT NULL DEFAULT 0,
	human_wins INT NOT NULL DEFAULT 0,
	ai_detection_score INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_seen TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS game_sessions (
	id BIGSERIAL PRIMARY KEY,
	session_uuid TEXT UNIQUE NOT NULL,
	room_key TEXT NOT NULL,
	room_type TEXT NOT NULL,
	prompt TEXT NOT NULL,
	human_response TEXT NOT NULL,
	response_author TEXT NOT NULL,
	ai_response TEXT NOT NULL,
	judge_human_prob DOUBLE PRECISION NOT NULL,
	judge_human_reasoning TEXT NOT NULL,
	judge_ai_prob DOUBLE PRECISION NOT NULL,
	judge_ai_reasoning TEXT NOT NULL,
	judge_correct BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ NOT NULL,
	duration_ms BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS game_sessions_completed_at_idx ON game_sessions (completed_at);

CREATE TABLE IF NOT EXISTS votes (
	id BIGSERIAL PRIMARY KEY,
	session_id BIGINT NOT NULL REFERENCES game_sessions(id),
	player_id TEXT NOT NULL,
	chosen_label TEXT NOT NULL,
	correct BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS training_examples (
	id BIGSERIAL PRIMARY KEY,
	session_id BIGINT NOT NULL REFERENCES game_sessions(id),
	batch_id BIGINT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS training_batches (
	id BIGSERIAL PRIMARY KEY,
	total_examples INT NOT NULL,
	model_version TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// pgStore persists outcomes to Postgres. Leaderboard and analytics are
// aggregate queries over the stored sessions rather than precomputed
// tables, so they cannot drift from the records.
type pgStore struct {
	cfg  *Config
	pool *pgxpool.Pool
}

func newPGStore(ctx context.Context, cfg *Config) (*pgStore, error) {
	pool, err := pgxpool.New(ctx, cfg.dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	logf(cfg, "STORE: Connected to postgres")
	return &pgStore{
		cfg:  cfg,
		pool: pool,
	}, nil
}

func (p *pgStore) SaveOutcome(ctx context.Context, rec OutcomeRecord) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var sessionID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO game_sessions (
			session_uuid, room_key, room_type, prompt,
			human_response, response_author, ai_response,
			judge_human_prob, judge_human_reasoning,
			judge_ai_prob, judge_ai_reasoning, judge_correct,
			created_at, completed_at, duration_ms
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (session_uuid) DO UPDATE SET completed_at = EXCLUDED.completed_at
		RETURNING id`,
		rec.SessionUUID, rec.RoomKey, rec.RoomType, rec.Prompt,
		rec.HumanResponse, rec.AuthorID, rec.AIResponse,
		rec.VerdictHuman.HumanProb, rec.VerdictHuman.Reasoning,
		rec.VerdictAI.HumanProb, rec.VerdictAI.Reasoning, rec.JudgeCorrect,
		rec.StartedAt, rec.CompletedAt, rec.DurationMS,
	).Scan(&sessionID)
	if err != nil {
		return err
	}

	for _, participant := range sessionParticipants(rec) {
		if err := upsertPlayer(ctx, tx, participant.id, participant.username, rec.CompletedAt); err != nil {
			return err
		}
	}

	if rec.AuthorID != "" && rec.VerdictHuman.HumanProb > 0.5 {
		if _, err := tx.Exec(ctx,
			`UPDATE players SET human_wins = human_wins + 1 WHERE id = $1`,
			rec.AuthorID); err != nil {
			return err
		}
	}

	for _, vote := range rec.Votes {
		if _, err := tx.Exec(ctx, `
			INSERT INTO votes (session_id, player_id, chosen_label, correct)
			VALUES ($1,$2,$3,$4)`,
			sessionID, vote.PlayerID, vote.Choice, vote.Correct); err != nil {
			return err
		}
		if vote.Correct {
			if _, err := tx.Exec(ctx,
				`UPDATE players SET ai_detection_score = ai_detection_score + 1 WHERE id = $1`,
				vote.PlayerID); err != nil {
				return err
			}
		}
	}

	if !rec.JudgeCorrect {
		if err := p.appendTrainingExample(ctx, tx, sessionID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

type sessionParticipant struct {
	id       string
	username string
}

// sessionParticipants lists each distinct player involved in a session,
// author first. The author normally also votes, so deduping here keeps
// games_played at one increment per session.
func sessionParticipants(rec OutcomeRecord) []sessionParticipant {
	seen := make(map[string]bool)
	participants := make([]sessionParticipant, 0, len(rec.Votes)+1)
	if rec.AuthorID != "" {
		seen[rec.AuthorID] = true
		participants = append(participants, sessionParticipant{id: rec.AuthorID, username: rec.AuthorName})
	}
	for _, vote := range rec.Votes {
		if seen[vote.PlayerID] {
			continue
		}
		seen[vote.PlayerID] = true
		participants = append(participants, sessionParticipant{id: vote.PlayerID, username: vote.Username})
	}
	return participants
}

func upsertPlayer(ctx context.Context, tx pgx.Tx, playerID, username string, seen time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO players (id, username, games_played, last_seen)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			games_played = players.games_played + 1,
			last_seen = EXCLUDED.last_seen`,
		playerID, username, seen)
	return err
}

// appendTrainingExample records a judge misclassification and folds the
// pending examples into a batch once enough have accumulated.
func (p *pgStore) appendTrainingExample(ctx context.Context, tx pgx.Tx, sessionID int64) error {
	if _, err := tx.Exec(ctx,
		`INSERT INTO training_examples (session_id) VALUES ($1)`,
		sessionID); err != nil {
		return err
	}

	var pending int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM training_examples WHERE batch_id IS NULL`,
	).Scan(&pending); err != nil {
		return err
	}

	if pending < p.cfg.trainingBatchSize {
		return nil
	}

	var batchID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO training_batches (total_examples, model_version, status)
		VALUES ($1, $2, 'pending')
		RETURNING id`,
		pending, judgeModelVersion).Scan(&batchID); err != nil {
		return err
	}

	_, err := tx.Exec(ctx,
		`UPDATE training_examples SET batch_id = $1 WHERE batch_id IS NULL`,
		batchID)
	return err
}

func (p *pgStore) Leaderboard(ctx context.Context, period, roomType string, limit int) ([]LeaderboardEntry, error) {
	cutoff, err := periodCutoff(period, time.Now())
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := p.pool.Query(ctx, `
		WITH window_sessions AS (
			SELECT id, session_uuid, response_author, judge_human_prob
			FROM game_sessions
			WHERE completed_at >= $1 AND ($2 = '' OR room_type = $2)
		),
		vote_stats AS (
			SELECT v.player_id,
			       COUNT(*) AS votes_cast,
			       COUNT(*) FILTER (WHERE v.correct) AS correct_votes
			FROM votes v
			JOIN window_sessions s ON s.id = v.session_id
			GROUP BY v.player_id
		),
		author_stats AS (
			SELECT response_author AS player_id,
			       COUNT(*) AS authored,
			       COUNT(*) FILTER (WHERE judge_human_prob > 0.5) AS deceptions
			FROM window_sessions
			WHERE response_author <> ''
			GROUP BY response_author
		),
		session_stats AS (
			SELECT player_id, COUNT(DISTINCT session_id) AS sessions
			FROM (
				SELECT v.player_id, v.session_id
				FROM votes v
				JOIN window_sessions s ON s.id = v.session_id
				UNION
				SELECT response_author, id
				FROM window_sessions
				WHERE response_author <> ''
			) participation
			GROUP BY player_id
		)
		SELECT p.username,
		       COALESCE(a.authored, 0),
		       COALESCE(a.deceptions, 0),
		       COALESCE(v.votes_cast, 0),
		       COALESCE(v.correct_votes, 0),
		       COALESCE(g.sessions, 0)
		FROM players p
		LEFT JOIN vote_stats v ON v.player_id = p.id
		LEFT JOIN author_stats a ON a.player_id = p.id
		LEFT JOIN session_stats g ON g.player_id = p.id
		WHERE COALESCE(v.votes_cast, 0) > 0 OR COALESCE(a.authored, 0) > 0
		LIMIT $3`,
		cutoff, roomType, limit*4)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]LeaderboardEntry, 0)
	for rows.Next() {
		var t playerTally
		var games int
		if err := rows.Scan(&t.username, &t.authored, &t.deceptions,
			&t.votesCast, &t.correctVotes, &games); err != nil {
			return nil, err
		}
		entry := scoreEntry(&t)
		entry.GamesPlayed = games
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OverallScore != entries[j].OverallScore {
			return entries[i].OverallScore > entries[j].OverallScore
		}
		return entries[i].Username < entries[j].Username
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func (p *pgStore) Analytics(ctx context.Context) (AnalyticsReport, error) {
	report := AnalyticsReport{
		SessionsByRoomType: make(map[string]int),
	}

	err := p.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(CASE WHEN judge_correct THEN 1.0 ELSE 0.0 END), 0)
		FROM game_sessions`,
	).Scan(&report.TotalSessions, &report.JudgeAccuracy)
	if err != nil {
		return report, err
	}

	err = p.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(CASE WHEN correct THEN 1.0 ELSE 0.0 END), 0) FROM votes`,
	).Scan(&report.PlayerVoteAccuracy)
	if err != nil {
		return report, err
	}

	rows, err := p.pool.Query(ctx,
		`SELECT room_type, COUNT(*) FROM game_sessions GROUP BY room_type`)
	if err != nil {
		return report, err
	}
	defer rows.Close()
	for rows.Next() {
		var roomType string
		var count int
		if err := rows.Scan(&roomType, &count); err != nil {
			return report, err
		}
		report.SessionsByRoomType[roomType] = count
	}
	if err := rows.Err(); err != nil {
		return report, err
	}

	err = p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM training_examples WHERE batch_id IS NULL`,
	).Scan(&report.PendingTrainingExamples)
	if err != nil {
		return report, err
	}

	err = p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM training_batches`,
	).Scan(&report.TrainingBatches)
	return report, err
}

func (p *pgStore) Close() {
	p.pool.Close()
}
