package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Connection pool configuration constants
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultConnMaxIdleTime = 30 * time.Second
)

// DatabaseConfig holds the connection parameters for the hosted Postgres
// config store. When Host is empty the binary falls back to the YAML
// snapshot in the config file.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Connection pool settings (optional)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// ConnectionString builds a PostgreSQL connection string from config
func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// PostgresProvider loads pricing snapshots from the five config tables in
// Postgres. Each Snapshot call reads all five inside one read-only
// transaction so the result is internally consistent.
type PostgresProvider struct {
	db *sql.DB
}

// NewPostgresProvider opens a connection pool against the config store and
// verifies connectivity.
func NewPostgresProvider(cfg DatabaseConfig) (*PostgresProvider, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime == 0 {
		cfg.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresProvider{db: db}, nil
}

// Close releases the underlying connection pool.
func (p *PostgresProvider) Close() error {
	return p.db.Close()
}

// Snapshot assembles one PricingConfig from the config tables.
func (p *PostgresProvider) Snapshot() (*PricingConfig, error) {
	tx, err := p.db.BeginTx(context.Background(), &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var snapshot PricingConfig

	if snapshot.Materials, err = loadMaterials(tx); err != nil {
		return nil, err
	}
	if snapshot.Markups, err = loadMarkups(tx); err != nil {
		return nil, err
	}
	if snapshot.BeveledPrices, err = loadBeveledPrices(tx); err != nil {
		return nil, err
	}
	if snapshot.ClippedCornerPrices, err = loadClippedCornerPrices(tx); err != nil {
		return nil, err
	}
	if snapshot.Settings, err = loadSettings(tx); err != nil {
		return nil, err
	}
	if snapshot.Formula, err = loadActiveFormula(tx); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func loadMaterials(tx *sql.Tx) ([]MaterialEntry, error) {
	rows, err := tx.Query(`SELECT thickness, glass_type, wholesale_base_price_per_sqft,
		wholesale_polish_price_per_inch, only_tempered, no_polish, never_tempered
		FROM glass_materials`)
	if err != nil {
		return nil, fmt.Errorf("failed to query glass materials: %w", err)
	}
	defer rows.Close()

	var materials []MaterialEntry
	for rows.Next() {
		var m MaterialEntry
		if err := rows.Scan(&m.Thickness, &m.GlassType, &m.WholesaleBasePricePerSqft,
			&m.WholesalePolishPricePerInch, &m.OnlyTempered, &m.NoPolish, &m.NeverTempered); err != nil {
			return nil, fmt.Errorf("failed to scan glass material row: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func loadMarkups(tx *sql.Tx) ([]MarkupEntry, error) {
	rows, err := tx.Query(`SELECT name, percentage FROM markups`)
	if err != nil {
		return nil, fmt.Errorf("failed to query markups: %w", err)
	}
	defer rows.Close()

	var markups []MarkupEntry
	for rows.Next() {
		var m MarkupEntry
		if err := rows.Scan(&m.Name, &m.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan markup row: %w", err)
		}
		markups = append(markups, m)
	}
	return markups, rows.Err()
}

func loadBeveledPrices(tx *sql.Tx) ([]BeveledPriceEntry, error) {
	rows, err := tx.Query(`SELECT thickness, price_per_inch FROM beveled_prices`)
	if err != nil {
		return nil, fmt.Errorf("failed to query beveled prices: %w", err)
	}
	defer rows.Close()

	var entries []BeveledPriceEntry
	for rows.Next() {
		var e BeveledPriceEntry
		if err := rows.Scan(&e.Thickness, &e.PricePerInch); err != nil {
			return nil, fmt.Errorf("failed to scan beveled price row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func loadClippedCornerPrices(tx *sql.Tx) ([]ClippedCornerPriceEntry, error) {
	rows, err := tx.Query(`SELECT thickness, clip_size, price_per_corner FROM clipped_corner_prices`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clipped corner prices: %w", err)
	}
	defer rows.Close()

	var entries []ClippedCornerPriceEntry
	for rows.Next() {
		var e ClippedCornerPriceEntry
		if err := rows.Scan(&e.Thickness, &e.ClipSize, &e.PricePerCorner); err != nil {
			return nil, fmt.Errorf("failed to scan clipped corner price row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func loadSettings(tx *sql.Tx) (CalculatorSettings, error) {
	var s CalculatorSettings
	err := tx.QueryRow(`SELECT minimum_billable_sqft, contractor_discount_rate, flat_mirror_polish_rate
		FROM calculator_settings LIMIT 1`).
		Scan(&s.MinimumBillableSqft, &s.ContractorDiscountRate, &s.FlatMirrorPolishRate)
	if err != nil {
		return s, fmt.Errorf("failed to load calculator settings: %w", err)
	}
	return s, nil
}

func loadActiveFormula(tx *sql.Tx) (FormulaConfig, error) {
	var f FormulaConfig
	var expression sql.NullString
	err := tx.QueryRow(`SELECT mode, divisor_value, multiplier_value, custom_expression,
		enable_base_price, enable_polish, enable_beveled, enable_clipped_corners,
		enable_tempered_markup, enable_shape_markup, enable_contractor_discount
		FROM formula_configs WHERE active = true`).
		Scan(&f.Mode, &f.DivisorValue, &f.MultiplierValue, &expression,
			&f.EnableBasePrice, &f.EnablePolish, &f.EnableBeveled, &f.EnableClippedCorners,
			&f.EnableTemperedMarkup, &f.EnableShapeMarkup, &f.EnableContractorDiscount)
	if err == sql.ErrNoRows {
		return f, fmt.Errorf("no active formula configuration")
	}
	if err != nil {
		return f, fmt.Errorf("failed to load active formula: %w", err)
	}
	f.CustomExpression = expression.String
	return f, nil
}
