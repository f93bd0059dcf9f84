package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Generation GenerationConfig
	Entity     EntityConfig
	Report     ReportConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Metrics    MetricsConfig
	Storage    StorageConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
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

// GenerationConfig holds the default pipeline parameters: one seed and
// size per ledger, the anomaly detector settings and the reference date.
type GenerationConfig struct {
	PayablesSeed  uint64
	LoansSeed     uint64
	PayrollSeed   uint64
	TaxSeed       uint64
	PayablesSize  int
	LoansSize     int
	PayrollSize   int
	TaxSize       int
	Contamination float64
	Trees         int
	DetectorSeed  uint64
	SupplierPool  int
	AsOf          string // YYYY-MM-DD, empty means today
	Window        WindowConfig
}

// WindowConfig bounds the day offsets used for synthesized dates
type WindowConfig struct {
	IssueLookbackMin int
	IssueLookbackMax int
	PaymentTermMin   int
	PaymentTermMax   int
	OverdueMin       int
	OverdueMax       int
	PendingMin       int
	PendingMax       int
	CorrectionMin    int
	CorrectionMax    int
	LoanLookbackMax  int
	TaxHorizon       int
}

// EntityConfig identifies the audited entity printed in the reports
type EntityConfig struct {
	Name      string
	TaxID     string
	Standards string
	City      string
}

// ReportConfig holds PDF page settings
type ReportConfig struct {
	PaperSize   string // A4, A5, LETTER
	Orientation string // PORTRAIT, LANDSCAPE
	Compression bool
}

// CacheConfig holds document cache settings
type CacheConfig struct {
	Enabled bool
	Backend string // memory, redis
	TTL     time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// StorageConfig holds the S3-compatible bucket compiled documents are
// published to
type StorageConfig struct {
	Enabled           bool
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	UsePathStyle      bool
	KeyPrefix         string
	PresignExpiration time.Duration
}

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// AsOfLayout is the date format of generation.as_of
const AsOfLayout = "2006-01-02"

// Load loads configuration from config.toml and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with LEDGER_ prefix (e.g., LEDGER_REDIS_HOST)
// 2. config.toml in ., ./configs or /app
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return build(v)
}

// LoadFile loads configuration from an explicit TOML file plus environment
// variables. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Zero is a valid seed and false a valid switch, so these cannot be
	// filled in by applyDefaults.
	v.SetDefault("generation.payables_seed", 42)
	v.SetDefault("generation.loans_seed", 42)
	v.SetDefault("generation.payroll_seed", 123)
	v.SetDefault("generation.tax_seed", 42)
	v.SetDefault("generation.detector_seed", 42)
	v.SetDefault("report.compression", true)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("storage.use_path_style", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
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
		Generation: GenerationConfig{
			PayablesSeed:  v.GetUint64("generation.payables_seed"),
			LoansSeed:     v.GetUint64("generation.loans_seed"),
			PayrollSeed:   v.GetUint64("generation.payroll_seed"),
			TaxSeed:       v.GetUint64("generation.tax_seed"),
			PayablesSize:  v.GetInt("generation.payables_size"),
			LoansSize:     v.GetInt("generation.loans_size"),
			PayrollSize:   v.GetInt("generation.payroll_size"),
			TaxSize:       v.GetInt("generation.tax_size"),
			Contamination: v.GetFloat64("generation.contamination"),
			Trees:         v.GetInt("generation.trees"),
			DetectorSeed:  v.GetUint64("generation.detector_seed"),
			SupplierPool:  v.GetInt("generation.supplier_pool"),
			AsOf:          v.GetString("generation.as_of"),
			Window: WindowConfig{
				IssueLookbackMin: v.GetInt("generation.window.issue_lookback_min"),
				IssueLookbackMax: v.GetInt("generation.window.issue_lookback_max"),
				PaymentTermMin:   v.GetInt("generation.window.payment_term_min"),
				PaymentTermMax:   v.GetInt("generation.window.payment_term_max"),
				OverdueMin:       v.GetInt("generation.window.overdue_min"),
				OverdueMax:       v.GetInt("generation.window.overdue_max"),
				PendingMin:       v.GetInt("generation.window.pending_min"),
				PendingMax:       v.GetInt("generation.window.pending_max"),
				CorrectionMin:    v.GetInt("generation.window.correction_min"),
				CorrectionMax:    v.GetInt("generation.window.correction_max"),
				LoanLookbackMax:  v.GetInt("generation.window.loan_lookback_max"),
				TaxHorizon:       v.GetInt("generation.window.tax_horizon"),
			},
		},
		Entity: EntityConfig{
			Name:      v.GetString("entity.name"),
			TaxID:     v.GetString("entity.tax_id"),
			Standards: v.GetString("entity.standards"),
			City:      v.GetString("entity.city"),
		},
		Report: ReportConfig{
			PaperSize:   v.GetString("report.paper_size"),
			Orientation: v.GetString("report.orientation"),
			Compression: v.GetBool("report.compression"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			Backend: v.GetString("cache.backend"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Path:    v.GetString("metrics.path"),
		},
		Storage: StorageConfig{
			Enabled:           v.GetBool("storage.enabled"),
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKey:         v.GetString("storage.access_key"),
			SecretKey:         v.GetString("storage.secret_key"),
			UseSSL:            v.GetBool("storage.use_ssl"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			KeyPrefix:         v.GetString("storage.key_prefix"),
			PresignExpiration: v.GetDuration("storage.presign_expiration"),
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
		cfg.App.Name = "pasivos-corrientes"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 30 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 120 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}

	g := &cfg.Generation
	if g.PayablesSize == 0 {
		g.PayablesSize = 50
	}
	if g.LoansSize == 0 {
		g.LoansSize = 50
	}
	if g.PayrollSize == 0 {
		g.PayrollSize = 100
	}
	if g.TaxSize == 0 {
		g.TaxSize = 50
	}
	if g.Contamination == 0 {
		g.Contamination = 0.10
	}
	if g.Trees == 0 {
		g.Trees = 100
	}
	if g.SupplierPool == 0 {
		g.SupplierPool = 20
	}
	applyWindowDefaults(&g.Window)

	if cfg.Entity.Name == "" {
		cfg.Entity.Name = "EMPRESA EJEMPLO S.A."
	}
	if cfg.Entity.TaxID == "" {
		cfg.Entity.TaxID = "30-12345678-9"
	}
	if cfg.Entity.Standards == "" {
		cfg.Entity.Standards = "RT 7, RT 37 (FACPCE) and International Standards on Auditing"
	}
	if cfg.Entity.City == "" {
		cfg.Entity.City = "Buenos Aires"
	}
	if cfg.Report.PaperSize == "" {
		cfg.Report.PaperSize = "A4"
	}
	if cfg.Report.Orientation == "" {
		cfg.Report.Orientation = "PORTRAIT"
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = time.Hour
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "ledger:doc:"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.Endpoint == "" {
		cfg.Storage.Endpoint = "http://localhost:9000"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "audit-documents"
	}
	if cfg.Storage.KeyPrefix == "" {
		cfg.Storage.KeyPrefix = "reports/"
	}
	if cfg.Storage.PresignExpiration == 0 {
		cfg.Storage.PresignExpiration = 15 * time.Minute
	}
}

func applyWindowDefaults(w *WindowConfig) {
	if w.IssueLookbackMin == 0 {
		w.IssueLookbackMin = 10
	}
	if w.IssueLookbackMax == 0 {
		w.IssueLookbackMax = 730
	}
	if w.PaymentTermMin == 0 {
		w.PaymentTermMin = 5
	}
	if w.PaymentTermMax == 0 {
		w.PaymentTermMax = 120
	}
	if w.OverdueMin == 0 {
		w.OverdueMin = 1
	}
	if w.OverdueMax == 0 {
		w.OverdueMax = 180
	}
	if w.PendingMin == 0 {
		w.PendingMin = 1
	}
	if w.PendingMax == 0 {
		w.PendingMax = 90
	}
	if w.CorrectionMin == 0 {
		w.CorrectionMin = 5
	}
	if w.CorrectionMax == 0 {
		w.CorrectionMax = 60
	}
	if w.LoanLookbackMax == 0 {
		w.LoanLookbackMax = 730
	}
	if w.TaxHorizon == 0 {
		w.TaxHorizon = 90
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	g := c.Generation
	sizes := map[string]int{
		"payables_size": g.PayablesSize,
		"loans_size":    g.LoansSize,
		"payroll_size":  g.PayrollSize,
		"tax_size":      g.TaxSize,
	}
	for key, size := range sizes {
		if size < 0 {
			return fmt.Errorf("generation.%s must be positive, got %d", key, size)
		}
	}
	if g.Contamination <= 0 || g.Contamination > 0.5 {
		return fmt.Errorf("generation.contamination must be in (0, 0.5], got %g", g.Contamination)
	}
	if g.Trees < 0 {
		return fmt.Errorf("generation.trees must be positive, got %d", g.Trees)
	}
	if _, _, err := g.AsOfDate(); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("cache.backend must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}

	if c.Storage.Enabled && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return fmt.Errorf("storage.access_key and storage.secret_key are required when storage is enabled")
	}

	if c.App.Env == "production" && c.Cache.Backend == CacheBackendRedis && c.Redis.Password == "" {
		return fmt.Errorf("redis.password is required in production")
	}
	return nil
}

// AsOfDate parses generation.as_of. The flag is false when no date is
// configured and the caller should use today.
func (g GenerationConfig) AsOfDate() (time.Time, bool, error) {
	if g.AsOf == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(AsOfLayout, g.AsOf)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("generation.as_of must be YYYY-MM-DD, got %q", g.AsOf)
	}
	return t.UTC(), true, nil
}

// Addr returns the host:port address of the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
