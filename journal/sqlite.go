package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, source, events, fills, wins, losses, anomalies,
		 total_pnl, total_fees, win_rate, profit_factor, max_drawdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Source, r.Events, r.Fills, r.Wins, r.Losses,
		r.Anomalies, r.TotalPnL, r.TotalFees, r.WinRate, r.ProfitFactor, r.MaxDrawdown,
	)
	return err
}

func (j *SQLiteJournal) RecordFill(runID string, rec FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills
		(id, run_id, time, symbol, side, price, quantity, fee, pnl, pnl_pct, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, runID, rec.Time, rec.Symbol, rec.Side, rec.Price,
		rec.Quantity, rec.Fee, rec.PnL, rec.PnLPct, rec.Status,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
