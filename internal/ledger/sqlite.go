package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// SQLiteLedger implements Ledger on SQLite for callers who opt into a
// durable journal. The append/query contract is identical to MemoryLedger;
// rowid stands in for insertion order.
type SQLiteLedger struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite creates a SQLite-backed ledger at dbPath.
func NewSQLite(dbPath string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	led := &SQLiteLedger{db: db, now: time.Now}
	if err := led.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return led, nil
}

// initSchema creates the two journal tables and their indexes.
func (l *SQLiteLedger) initSchema() error {
	schema := `
	-- Trade legs table, one row per (trade_id, leg_id); duplicates allowed
	CREATE TABLE IF NOT EXISTS trade_legs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id INTEGER NOT NULL,
		leg_id INTEGER NOT NULL,
		exchange TEXT NOT NULL,
		symbol TEXT NOT NULL,
		multiplier REAL NOT NULL,
		instrument TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_time DATETIME NOT NULL,
		strategy TEXT,
		buy_qty REAL NOT NULL,
		buy_price REAL NOT NULL,
		initial_stop REAL,
		targets TEXT,
		sell_qty REAL NOT NULL,
		exit_price REAL NOT NULL,
		exit_time DATETIME,
		charges REAL NOT NULL,
		catalyst TEXT,
		conviction INTEGER NOT NULL,
		notes TEXT,
		status TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Stop events table, weak reference to trade_legs (no cascade)
	CREATE TABLE IF NOT EXISTS stop_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id INTEGER NOT NULL,
		leg_id INTEGER NOT NULL,
		stop_type TEXT NOT NULL,
		stop_price REAL NOT NULL,
		timestamp DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trade_legs_key ON trade_legs(trade_id, leg_id);
	CREATE INDEX IF NOT EXISTS idx_stop_events_key ON stop_events(trade_id, leg_id, timestamp);
	`
	_, err := l.db.Exec(schema)
	return err
}

// NextSuggestedTradeID returns 1 when the trades table is empty, otherwise
// max(trade_id)+1.
func (l *SQLiteLedger) NextSuggestedTradeID() (int, error) {
	var max sql.NullInt64
	if err := l.db.QueryRow(`SELECT MAX(trade_id) FROM trade_legs`).Scan(&max); err != nil {
		return 0, apperrors.NewLedgerError("next_trade_id", 0, 0, err)
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}

// AppendTrade inserts the leg unconditionally.
func (l *SQLiteLedger) AppendTrade(leg models.TradeLeg) error {
	targets, err := json.Marshal(leg.Targets)
	if err != nil {
		return fmt.Errorf("failed to encode targets: %w", err)
	}

	var initialStop sql.NullFloat64
	if leg.InitialStop != nil {
		initialStop = sql.NullFloat64{Float64: *leg.InitialStop, Valid: true}
	}
	var exitTime sql.NullTime
	if leg.ExitTime != nil {
		exitTime = sql.NullTime{Time: *leg.ExitTime, Valid: true}
	}

	_, err = l.db.Exec(`
		INSERT INTO trade_legs
		(trade_id, leg_id, exchange, symbol, multiplier, instrument, direction,
		 entry_time, strategy, buy_qty, buy_price, initial_stop, targets,
		 sell_qty, exit_price, exit_time, charges, catalyst, conviction, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		leg.TradeID, leg.LegID, string(leg.Exchange), leg.Symbol, leg.Multiplier,
		string(leg.Instrument), string(leg.Direction), leg.EntryTime, leg.Strategy,
		leg.BuyQty, leg.BuyPrice, initialStop, string(targets),
		leg.SellQty, leg.ExitPrice, exitTime, leg.Charges, leg.Catalyst,
		leg.Conviction, leg.Notes, string(leg.Status),
	)
	if err != nil {
		return apperrors.NewLedgerError("append_trade", leg.TradeID, leg.LegID, err)
	}
	return nil
}

// AppendStop inserts the event unconditionally, stamping a zero timestamp
// with the current time.
func (l *SQLiteLedger) AppendStop(ev models.StopEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = l.now()
	}
	_, err := l.db.Exec(`
		INSERT INTO stop_events (trade_id, leg_id, stop_type, stop_price, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		ev.TradeID, ev.LegID, string(ev.Type), ev.Price, ev.Timestamp,
	)
	if err != nil {
		return apperrors.NewLedgerError("append_stop", ev.TradeID, ev.LegID, err)
	}
	return nil
}

// ActiveStop returns the latest stop price for the key, or def unchanged
// when no events match. Ordering by timestamp then rowid matches the memory
// backend's stable-sort tie-break.
func (l *SQLiteLedger) ActiveStop(tradeID, legID int, def *float64) (*float64, error) {
	var price float64
	err := l.db.QueryRow(`
		SELECT stop_price FROM stop_events
		WHERE trade_id = ? AND leg_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`, tradeID, legID).Scan(&price)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return nil, apperrors.NewLedgerError("active_stop", tradeID, legID, err)
	}
	return &price, nil
}

// Trades returns the trades table in insertion order.
func (l *SQLiteLedger) Trades() ([]models.TradeLeg, error) {
	rows, err := l.db.Query(`
		SELECT trade_id, leg_id, exchange, symbol, multiplier, instrument, direction,
		       entry_time, strategy, buy_qty, buy_price, initial_stop, targets,
		       sell_qty, exit_price, exit_time, charges, catalyst, conviction, notes, status
		FROM trade_legs
		ORDER BY id ASC`)
	if err != nil {
		return nil, apperrors.NewLedgerError("trades", 0, 0, err)
	}
	defer rows.Close()

	var out []models.TradeLeg
	for rows.Next() {
		var (
			leg         models.TradeLeg
			exchange    string
			instrument  string
			direction   string
			status      string
			initialStop sql.NullFloat64
			targets     sql.NullString
			exitTime    sql.NullTime
		)
		if err := rows.Scan(
			&leg.TradeID, &leg.LegID, &exchange, &leg.Symbol, &leg.Multiplier,
			&instrument, &direction, &leg.EntryTime, &leg.Strategy,
			&leg.BuyQty, &leg.BuyPrice, &initialStop, &targets,
			&leg.SellQty, &leg.ExitPrice, &exitTime, &leg.Charges,
			&leg.Catalyst, &leg.Conviction, &leg.Notes, &status,
		); err != nil {
			return nil, apperrors.NewLedgerError("trades", 0, 0, err)
		}
		leg.Exchange = models.Exchange(exchange)
		leg.Instrument = models.Instrument(instrument)
		leg.Direction = models.Direction(direction)
		leg.Status = models.TradeStatus(status)
		if initialStop.Valid {
			v := initialStop.Float64
			leg.InitialStop = &v
		}
		if exitTime.Valid {
			t := exitTime.Time
			leg.ExitTime = &t
		}
		if targets.Valid && targets.String != "" && targets.String != "null" {
			if err := json.Unmarshal([]byte(targets.String), &leg.Targets); err != nil {
				return nil, fmt.Errorf("failed to decode targets: %w", err)
			}
		}
		out = append(out, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewLedgerError("trades", 0, 0, err)
	}
	return out, nil
}

// Stops returns the stops table in insertion order.
func (l *SQLiteLedger) Stops() ([]models.StopEvent, error) {
	rows, err := l.db.Query(`
		SELECT trade_id, leg_id, stop_type, stop_price, timestamp
		FROM stop_events
		ORDER BY id ASC`)
	if err != nil {
		return nil, apperrors.NewLedgerError("stops", 0, 0, err)
	}
	defer rows.Close()

	var out []models.StopEvent
	for rows.Next() {
		var (
			ev       models.StopEvent
			stopType string
		)
		if err := rows.Scan(&ev.TradeID, &ev.LegID, &stopType, &ev.Price, &ev.Timestamp); err != nil {
			return nil, apperrors.NewLedgerError("stops", 0, 0, err)
		}
		ev.Type = models.StopType(stopType)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewLedgerError("stops", 0, 0, err)
	}
	return out, nil
}

// HasLeg reports whether at least one leg with the given key exists.
func (l *SQLiteLedger) HasLeg(tradeID, legID int) (bool, error) {
	var n int
	err := l.db.QueryRow(`
		SELECT COUNT(1) FROM trade_legs WHERE trade_id = ? AND leg_id = ?`,
		tradeID, legID).Scan(&n)
	if err != nil {
		return false, apperrors.NewLedgerError("has_leg", tradeID, legID, err)
	}
	return n > 0, nil
}

// Close closes the underlying database.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
