package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	LogLevel                  string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Policy                    PolicyConfig
	RateLimit                 RateLimitConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// PolicyConfig holds the business-policy knobs for booking and moderation.
// These encode clinic rules that change without code changes, so every
// value is read from the environment with a default.
type PolicyConfig struct {
	// CancellationWindow is the minimum lead time between a cancellation
	// and the scheduled appointment time.
	CancellationWindow time.Duration
	// MinBookingLead is how far in the future a slot must be to be bookable.
	// Zero means "strictly in the future".
	MinBookingLead time.Duration
	// SlotGranularity is the width of one bookable slot on a doctor's day grid.
	SlotGranularity time.Duration
	// WarningExpiry is how long a warning issued from a report resolution stays active.
	WarningExpiry time.Duration
	// FeePenaltyMultiplier is the surcharge factor applied by a PENALTY_APPLIED resolution.
	FeePenaltyMultiplier float64
	// FeePenaltyDuration is how long that surcharge stays in effect.
	FeePenaltyDuration time.Duration
	// SuspensionDuration is the length of a temporary suspension from an
	// ACCOUNT_SUSPENDED resolution. ACCOUNT_BANNED issues an indefinite one.
	SuspensionDuration time.Duration
	// OfficeOpenHour and OfficeCloseHour bound the daily slot grid (24h clock).
	OfficeOpenHour  int
	OfficeCloseHour int
}

// RateLimitConfig holds request throttling settings for write-heavy endpoints.
type RateLimitConfig struct {
	BookingPerMinute int64
	ReportPerMinute  int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	policy, err := loadPolicyConfig()
	if err != nil {
		return nil, err
	}

	rateLimit, err := loadRateLimitConfig()
	if err != nil {
		return nil, err
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:4200"),
		Environment:               getEnv("APP_ENV", "development"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		Policy:                    policy,
		RateLimit:                 rateLimit,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

func loadPolicyConfig() (PolicyConfig, error) {
	cancellationWindowHours, err := strconv.Atoi(getEnv("CANCELLATION_WINDOW_HOURS", "24"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid CANCELLATION_WINDOW_HOURS: %w", err)
	}

	minLeadMinutes, err := strconv.Atoi(getEnv("MIN_BOOKING_LEAD_MINUTES", "0"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid MIN_BOOKING_LEAD_MINUTES: %w", err)
	}

	slotMinutes, err := strconv.Atoi(getEnv("SLOT_GRANULARITY_MINUTES", "30"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid SLOT_GRANULARITY_MINUTES: %w", err)
	}

	warningExpiryDays, err := strconv.Atoi(getEnv("WARNING_EXPIRY_DAYS", "90"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid WARNING_EXPIRY_DAYS: %w", err)
	}

	feeMultiplier, err := strconv.ParseFloat(getEnv("FEE_PENALTY_MULTIPLIER", "1.5"), 64)
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid FEE_PENALTY_MULTIPLIER: %w", err)
	}
	if feeMultiplier < 1.0 {
		return PolicyConfig{}, fmt.Errorf("FEE_PENALTY_MULTIPLIER must be >= 1.0, got %v", feeMultiplier)
	}

	feePenaltyDays, err := strconv.Atoi(getEnv("FEE_PENALTY_DAYS", "30"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid FEE_PENALTY_DAYS: %w", err)
	}

	suspensionDays, err := strconv.Atoi(getEnv("SUSPENSION_DAYS", "14"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid SUSPENSION_DAYS: %w", err)
	}

	openHour, err := strconv.Atoi(getEnv("OFFICE_OPEN_HOUR", "9"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid OFFICE_OPEN_HOUR: %w", err)
	}

	closeHour, err := strconv.Atoi(getEnv("OFFICE_CLOSE_HOUR", "17"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid OFFICE_CLOSE_HOUR: %w", err)
	}
	if closeHour <= openHour {
		return PolicyConfig{}, fmt.Errorf("OFFICE_CLOSE_HOUR (%d) must be after OFFICE_OPEN_HOUR (%d)", closeHour, openHour)
	}

	return PolicyConfig{
		CancellationWindow:   time.Duration(cancellationWindowHours) * time.Hour,
		MinBookingLead:       time.Duration(minLeadMinutes) * time.Minute,
		SlotGranularity:      time.Duration(slotMinutes) * time.Minute,
		WarningExpiry:        time.Duration(warningExpiryDays) * 24 * time.Hour,
		FeePenaltyMultiplier: feeMultiplier,
		FeePenaltyDuration:   time.Duration(feePenaltyDays) * 24 * time.Hour,
		SuspensionDuration:   time.Duration(suspensionDays) * 24 * time.Hour,
		OfficeOpenHour:       openHour,
		OfficeCloseHour:      closeHour,
	}, nil
}

func loadRateLimitConfig() (RateLimitConfig, error) {
	bookingPerMinute, err := strconv.ParseInt(getEnv("RATE_LIMIT_BOOKING_PER_MINUTE", "10"), 10, 64)
	if err != nil {
		return RateLimitConfig{}, fmt.Errorf("invalid RATE_LIMIT_BOOKING_PER_MINUTE: %w", err)
	}

	reportPerMinute, err := strconv.ParseInt(getEnv("RATE_LIMIT_REPORT_PER_MINUTE", "5"), 10, 64)
	if err != nil {
		return RateLimitConfig{}, fmt.Errorf("invalid RATE_LIMIT_REPORT_PER_MINUTE: %w", err)
	}

	return RateLimitConfig{
		BookingPerMinute: bookingPerMinute,
		ReportPerMinute:  reportPerMinute,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
