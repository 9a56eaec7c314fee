package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetRun returns a single run summary by ID.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	var r RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, source, events, fills, wins, losses, anomalies,
		       total_pnl, total_fees, win_rate, profit_factor, max_drawdown
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID,
		&r.Created,
		&r.Source,
		&r.Events,
		&r.Fills,
		&r.Wins,
		&r.Losses,
		&r.Anomalies,
		&r.TotalPnL,
		&r.TotalFees,
		&r.WinRate,
		&r.ProfitFactor,
		&r.MaxDrawdown,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListFillsByRun returns all fills recorded under one run, oldest first.
func (j *SQLiteJournal) ListFillsByRun(runID string) ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, symbol, side, price, quantity, fee, pnl, pnl_pct, status
		FROM fills
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	return scanFills(rows)
}

// ListFillsBetween returns fills whose time is within [start, end).
func (j *SQLiteJournal) ListFillsBetween(start, end time.Time) ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, symbol, side, price, quantity, fee, pnl, pnl_pct, status
		FROM fills
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return scanFills(rows)
}

func scanFills(rows *sql.Rows) ([]FillRecord, error) {
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		var rec FillRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Time,
			&rec.Symbol,
			&rec.Side,
			&rec.Price,
			&rec.Quantity,
			&rec.Fee,
			&rec.PnL,
			&rec.PnLPct,
			&rec.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
