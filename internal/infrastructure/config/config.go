package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Engine   EngineConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// EngineConfig holds the financial policy overrides. A zero value means
// "use the documented default"; negative rates are rejected by validate.
type EngineConfig struct {
	GSTRatePercent        float64
	TDSRatePercent        float64
	ProfessionalTaxAmount float64

	CreditHistoryLimit       int
	CreditLatePenaltyWeight  float64
	CreditOverdueThreshold   int
	CreditLowRiskMinScore    float64
	CreditMediumRiskMinScore float64

	LaborRatePerUnit        float64
	StandardOverheadPercent float64
	ActualOverheadPercent   float64

	ReconcileAmountEpsilon     float64
	ReconcileDateToleranceDays int
	ReconcileLookbackDays      int
	ReconcileLookaheadDays     int

	CollectionMaxActions int

	ForecastHorizonDays  int
	ForecastLookbackDays int
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with FINANCE_ prefix (e.g., FINANCE_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("FINANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
		},
		Engine: EngineConfig{
			GSTRatePercent:        v.GetFloat64("engine.gst_rate_percent"),
			TDSRatePercent:        v.GetFloat64("engine.tds_rate_percent"),
			ProfessionalTaxAmount: v.GetFloat64("engine.professional_tax_amount"),

			CreditHistoryLimit:       v.GetInt("engine.credit_history_limit"),
			CreditLatePenaltyWeight:  v.GetFloat64("engine.credit_late_penalty_weight"),
			CreditOverdueThreshold:   v.GetInt("engine.credit_overdue_threshold_days"),
			CreditLowRiskMinScore:    v.GetFloat64("engine.credit_low_risk_min_score"),
			CreditMediumRiskMinScore: v.GetFloat64("engine.credit_medium_risk_min_score"),

			LaborRatePerUnit:        v.GetFloat64("engine.labor_rate_per_unit"),
			StandardOverheadPercent: v.GetFloat64("engine.standard_overhead_percent"),
			ActualOverheadPercent:   v.GetFloat64("engine.actual_overhead_percent"),

			ReconcileAmountEpsilon:     v.GetFloat64("engine.reconcile_amount_epsilon"),
			ReconcileDateToleranceDays: v.GetInt("engine.reconcile_date_tolerance_days"),
			ReconcileLookbackDays:      v.GetInt("engine.reconcile_lookback_days"),
			ReconcileLookaheadDays:     v.GetInt("engine.reconcile_lookahead_days"),

			CollectionMaxActions: v.GetInt("engine.collection_max_actions"),

			ForecastHorizonDays:  v.GetInt("engine.forecast_horizon_days"),
			ForecastLookbackDays: v.GetInt("engine.forecast_lookback_days"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "finance-engine"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "finance"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	e := c.Engine
	for name, value := range map[string]float64{
		"engine.gst_rate_percent":          e.GSTRatePercent,
		"engine.tds_rate_percent":          e.TDSRatePercent,
		"engine.professional_tax_amount":   e.ProfessionalTaxAmount,
		"engine.labor_rate_per_unit":       e.LaborRatePerUnit,
		"engine.standard_overhead_percent": e.StandardOverheadPercent,
		"engine.actual_overhead_percent":   e.ActualOverheadPercent,
		"engine.reconcile_amount_epsilon":  e.ReconcileAmountEpsilon,
	} {
		if value < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	if e.GSTRatePercent > 100 {
		return fmt.Errorf("engine.gst_rate_percent cannot exceed 100")
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// The policy builders start from the documented domain defaults and apply
// only the overrides the deployment actually set, so a zero config still
// produces a fully working engine.

// TaxPolicy builds the tax policy with configured overrides applied.
func (e EngineConfig) TaxPolicy() finance.TaxPolicy {
	policy := finance.DefaultTaxPolicy()
	if e.GSTRatePercent > 0 {
		policy.GSTRatePercent = decimal.NewFromFloat(e.GSTRatePercent)
	}
	if e.TDSRatePercent > 0 {
		policy.TDSRatePercent = decimal.NewFromFloat(e.TDSRatePercent)
	}
	if e.ProfessionalTaxAmount > 0 {
		policy.ProfessionalTaxAmount = decimal.NewFromFloat(e.ProfessionalTaxAmount)
	}
	return policy
}

// CreditPolicy builds the credit scoring policy with overrides applied.
func (e EngineConfig) CreditPolicy() finance.CreditPolicy {
	policy := finance.DefaultCreditPolicy()
	if e.CreditHistoryLimit > 0 {
		policy.HistoryLimit = e.CreditHistoryLimit
	}
	if e.CreditLatePenaltyWeight > 0 {
		policy.LatePenaltyWeight = decimal.NewFromFloat(e.CreditLatePenaltyWeight)
	}
	if e.CreditOverdueThreshold > 0 {
		policy.OverdueThresholdDays = e.CreditOverdueThreshold
	}
	if e.CreditLowRiskMinScore > 0 {
		policy.LowRiskMinScore = decimal.NewFromFloat(e.CreditLowRiskMinScore)
	}
	if e.CreditMediumRiskMinScore > 0 {
		policy.MediumRiskMinScore = decimal.NewFromFloat(e.CreditMediumRiskMinScore)
	}
	return policy
}

// CostingPolicy builds the production costing policy with overrides applied.
func (e EngineConfig) CostingPolicy() finance.CostingPolicy {
	policy := finance.DefaultCostingPolicy()
	if e.LaborRatePerUnit > 0 {
		policy.LaborRatePerUnit = decimal.NewFromFloat(e.LaborRatePerUnit)
	}
	if e.StandardOverheadPercent > 0 {
		policy.StandardOverheadPercent = decimal.NewFromFloat(e.StandardOverheadPercent)
	}
	if e.ActualOverheadPercent > 0 {
		policy.ActualOverheadPercent = decimal.NewFromFloat(e.ActualOverheadPercent)
	}
	return policy
}

// ReconcilePolicy builds the bank reconciliation policy with overrides applied.
func (e EngineConfig) ReconcilePolicy() finance.ReconcilePolicy {
	policy := finance.DefaultReconcilePolicy()
	if e.ReconcileAmountEpsilon > 0 {
		policy.AmountEpsilon = decimal.NewFromFloat(e.ReconcileAmountEpsilon)
	}
	if e.ReconcileDateToleranceDays > 0 {
		policy.DateToleranceDays = e.ReconcileDateToleranceDays
	}
	if e.ReconcileLookbackDays > 0 {
		policy.LookbackDays = e.ReconcileLookbackDays
	}
	if e.ReconcileLookaheadDays > 0 {
		policy.LookaheadDays = e.ReconcileLookaheadDays
	}
	return policy
}

// CollectionPolicy builds the collection escalation policy with overrides
// applied.
func (e EngineConfig) CollectionPolicy() finance.CollectionPolicy {
	policy := finance.DefaultCollectionPolicy()
	if e.CollectionMaxActions > 0 {
		policy.MaxActions = e.CollectionMaxActions
	}
	return policy
}

// ForecastPolicy builds the cash flow forecast policy with overrides applied.
func (e EngineConfig) ForecastPolicy() finance.ForecastPolicy {
	policy := finance.DefaultForecastPolicy()
	if e.ForecastHorizonDays > 0 {
		policy.HorizonDays = e.ForecastHorizonDays
	}
	if e.ForecastLookbackDays > 0 {
		policy.LookbackDays = e.ForecastLookbackDays
	}
	return policy
}
