package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/rollout"
)

// ErrResultNotFound is returned when a result lookup yields no rows.
var ErrResultNotFound = errors.New("battle result not found")

// ErrResultExists is returned when saving a battle ID that is already stored.
var ErrResultExists = errors.New("battle result already stored")

// StoredRecord is a rollout record as read back from the database.
type StoredRecord struct {
	rollout.Record
	CreatedAt time.Time
}

// Matchup aggregates every stored battle between one pair of labels.
type Matchup struct {
	Labels    [2]string
	Battles   int
	Wins      [2]int
	Draws     int
	Forfeits  int
	MeanTurns float64
}

// ResultRepository persists battle results. It implements rollout.Sink.
type ResultRepository struct {
	db *pgxpool.Pool
}

var _ rollout.Sink = (*ResultRepository)(nil)

// NewResultRepository creates a ResultRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

const resultColumns = `battle_id, rollout_id, idx, seed, label1, label2, outcome, winner,
	turns, forfeit, reason, remaining1, remaining2, created_at`

// Save inserts one finished battle.
//
// Precondition: rec.Result.Outcome is Win or Draw.
// Postcondition: returns ErrResultExists if the battle ID is already stored.
func (r *ResultRepository) Save(ctx context.Context, rec rollout.Record) error {
	res := rec.Result
	var winner *int16
	switch res.Outcome {
	case combat.OutcomeWin:
		w := int16(res.Winner)
		winner = &w
	case combat.OutcomeDraw:
	default:
		return fmt.Errorf("saving battle %s: outcome %s is not final", res.BattleID, res.Outcome)
	}

	// The seed column is signed; the bits round-trip unchanged.
	_, err := r.db.Exec(ctx,
		`INSERT INTO battle_results
		 (battle_id, rollout_id, idx, seed, label1, label2, outcome, winner,
		  turns, forfeit, reason, remaining1, remaining2)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		res.BattleID, rec.RolloutID, rec.Index, int64(rec.Seed),
		rec.Labels[0], rec.Labels[1], res.Outcome.String(), winner,
		res.Turns, res.Forfeit, res.Reason, res.Remaining[0], res.Remaining[1],
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrResultExists
		}
		return fmt.Errorf("inserting battle result: %w", err)
	}
	return nil
}

// Get returns the stored result for one battle.
//
// Postcondition: returns ErrResultNotFound if no such battle was saved.
func (r *ResultRepository) Get(ctx context.Context, battleID uuid.UUID) (StoredRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM battle_results WHERE battle_id = $1`, battleID)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredRecord{}, ErrResultNotFound
		}
		return StoredRecord{}, fmt.Errorf("querying battle result: %w", err)
	}
	return rec, nil
}

// ListByRollout returns every stored battle of one rollout, ordered by index.
func (r *ResultRepository) ListByRollout(ctx context.Context, rolloutID uuid.UUID) ([]StoredRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+resultColumns+` FROM battle_results WHERE rollout_id = $1 ORDER BY idx`, rolloutID)
	if err != nil {
		return nil, fmt.Errorf("listing battle results: %w", err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battle result: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summarize rebuilds the summary of a stored rollout. Elapsed is zero.
func (r *ResultRepository) Summarize(ctx context.Context, rolloutID uuid.UUID) (*rollout.Summary, error) {
	stored, err := r.ListByRollout(ctx, rolloutID)
	if err != nil {
		return nil, err
	}
	records := make([]rollout.Record, len(stored))
	for i, s := range stored {
		records[i] = s.Record
	}
	sum := rollout.Summarize(records)
	sum.RolloutID = rolloutID
	return sum, nil
}

// Matchups aggregates all stored battles by label pair, most played first.
func (r *ResultRepository) Matchups(ctx context.Context) ([]Matchup, error) {
	rows, err := r.db.Query(ctx, `
		SELECT label1, label2,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE winner = 0),
		       COUNT(*) FILTER (WHERE winner = 1),
		       COUNT(*) FILTER (WHERE outcome = 'draw'),
		       COUNT(*) FILTER (WHERE forfeit),
		       AVG(turns)::float8
		FROM battle_results
		GROUP BY label1, label2
		ORDER BY COUNT(*) DESC, label1, label2`)
	if err != nil {
		return nil, fmt.Errorf("aggregating matchups: %w", err)
	}
	defer rows.Close()

	var out []Matchup
	for rows.Next() {
		var m Matchup
		if err := rows.Scan(
			&m.Labels[0], &m.Labels[1], &m.Battles,
			&m.Wins[0], &m.Wins[1], &m.Draws, &m.Forfeits, &m.MeanTurns,
		); err != nil {
			return nil, fmt.Errorf("scanning matchup: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (StoredRecord, error) {
	var (
		rec     StoredRecord
		seed    int64
		outcome string
		winner  *int16
	)
	err := row.Scan(
		&rec.Result.BattleID, &rec.RolloutID, &rec.Index, &seed,
		&rec.Labels[0], &rec.Labels[1], &outcome, &winner,
		&rec.Result.Turns, &rec.Result.Forfeit, &rec.Result.Reason,
		&rec.Result.Remaining[0], &rec.Result.Remaining[1], &rec.CreatedAt,
	)
	if err != nil {
		return StoredRecord{}, err
	}
	rec.Seed = uint64(seed)
	switch outcome {
	case "win":
		rec.Result.Outcome = combat.OutcomeWin
	case "draw":
		rec.Result.Outcome = combat.OutcomeDraw
	default:
		return StoredRecord{}, fmt.Errorf("unknown outcome %q", outcome)
	}
	if winner != nil {
		rec.Result.Winner = battle.SideID(*winner)
	}
	return rec, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
