package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// dateLayout stores trade dates at day granularity, matching the ledger's
// ordering contract.
const dateLayout = "2006-01-02"

// Store implements the ports.LedgerStore interface using SQLite. The trades
// table is append-only: this adapter issues no UPDATE or DELETE statements.
type Store struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite ledger store.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewStore opens (and if needed creates) the ledger database.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite ledger store")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/journal.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "Ledger store initialization failed")
		return nil, err
	}

	// WAL mode keeps reads cheap while a single writer appends.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open ledger database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "Ledger store initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping ledger database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "Ledger store initialization failed")
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &Store{db: db, logger: cfg.Logger}
	if err := store.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize ledger schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "Ledger store initialization failed")
		return nil, err
	}

	cfg.Logger.Info(context.Background(), "Ledger store ready", map[string]interface{}{"path": dbPath})
	return store, nil
}

func (s *Store) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		trade_date TEXT NOT NULL,
		ticker TEXT NOT NULL,
		action TEXT NOT NULL,
		price REAL NOT NULL,
		quantity INTEGER NOT NULL,
		pnl REAL NOT NULL,
		confidence INTEGER NOT NULL,
		behavior_tag TEXT NOT NULL,
		note TEXT NOT NULL,
		ctx_current_price REAL NOT NULL DEFAULT 0,
		ctx_rsi REAL NOT NULL DEFAULT 0,
		ctx_sma20 REAL NOT NULL DEFAULT 0,
		ctx_sma50 REAL NOT NULL DEFAULT 0,
		ctx_volatility REAL NOT NULL DEFAULT 0,
		ctx_sentiment TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_trades_ticker_date ON trades (ticker, trade_date);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		s.logger.Info(context.Background(), "Closing ledger store")
		return s.db.Close()
	}
	return nil
}

// ReadAll retrieves the full ledger, newest first by insertion sequence.
func (s *Store) ReadAll(ctx context.Context) ([]*domain.Trade, error) {
	const query = `
	SELECT seq, id, trade_date, ticker, action, price, quantity, pnl, confidence,
	       behavior_tag, note, ctx_current_price, ctx_rsi, ctx_sma20, ctx_sma50,
	       ctx_volatility, ctx_sentiment
	FROM trades
	ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %v: %w", err, ports.ErrStoreUnavailable)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade during ReadAll: %v: %w", err, ports.ErrStoreUnavailable)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %v: %w", err, ports.ErrStoreUnavailable)
	}
	return trades, nil
}

// Append stores a new trade and returns it with its insertion sequence set.
func (s *Store) Append(ctx context.Context, trade *domain.Trade) (*domain.Trade, error) {
	const query = `
	INSERT INTO trades (id, trade_date, ticker, action, price, quantity, pnl, confidence,
	                    behavior_tag, note, ctx_current_price, ctx_rsi, ctx_sma20, ctx_sma50,
	                    ctx_volatility, ctx_sentiment)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		trade.ID, trade.Date.Format(dateLayout), trade.Ticker, string(trade.Action),
		trade.Price, trade.Quantity, trade.PnL, trade.Confidence,
		trade.BehaviorTag, trade.Note,
		trade.Context.CurrentPrice, trade.Context.RSI, trade.Context.SMA20,
		trade.Context.SMA50, trade.Context.Volatility, string(trade.Context.Sentiment))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("trade %s: %w", trade.ID, ports.ErrDuplicateID)
		}
		return nil, fmt.Errorf("failed to append trade %s: %v: %w", trade.ID, err, ports.ErrStoreUnavailable)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insertion sequence for trade %s: %v: %w", trade.ID, err, ports.ErrStoreUnavailable)
	}

	stored := *trade
	stored.Seq = seq
	s.logger.Debug(ctx, "Trade appended", map[string]interface{}{"tradeID": stored.ID, "ticker": stored.Ticker, "seq": seq})
	return &stored, nil
}

// scanner is compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(sc scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var date, action, sentiment string
	err := sc.Scan(
		&t.Seq, &t.ID, &date, &t.Ticker, &action, &t.Price, &t.Quantity, &t.PnL,
		&t.Confidence, &t.BehaviorTag, &t.Note,
		&t.Context.CurrentPrice, &t.Context.RSI, &t.Context.SMA20,
		&t.Context.SMA50, &t.Context.Volatility, &sentiment)
	if err != nil {
		return nil, err
	}
	t.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("malformed trade date %q: %w", date, err)
	}
	t.Action = domain.Action(action)
	t.Context.Sentiment = domain.Sentiment(sentiment)
	return t, nil
}
