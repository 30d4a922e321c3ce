package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Security    SecurityConfig
	Chain       ChainConfig
	Fees        FeeDefaults
	Attestation AttestationConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// SecurityConfig holds authentication material
type SecurityConfig struct {
	AdminAPIKeyHash string
	JWTSecret       string
	JWTExpiry       time.Duration
	OwnerPrivateKey string
}

// ChainConfig describes the local execution context this instance serves.
type ChainConfig struct {
	ChainID uint64
	RPCURL  string
	// LocalTransport is the chain-local bridge transport (message
	// transmitter) whose deliveries the hook receiver accepts. Fixed at
	// startup, matching the receiver's constructor-set transmitter.
	LocalTransport string
	CustodyAddress string
	// FeeCollector is the identity the dispatcher credits fees under. It
	// must be on the collector allow-list for fee accrual to proceed.
	FeeCollector string
}

// FeeDefaults seeds the fee settings row on first boot.
type FeeDefaults struct {
	BasisPoints uint32
}

// AttestationConfig points at the bridge attestation API. LocalDomain is
// the message passing domain of the chain this instance runs on, used to
// look up outbound burn messages by transaction hash.
type AttestationConfig struct {
	BaseURL      string
	LocalDomain  uint32
	PollInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "stableroute"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Security: SecurityConfig{
			AdminAPIKeyHash: getEnv("ADMIN_API_KEY_HASH", ""),
			JWTSecret:       getEnv("JWT_SECRET", "change-this-in-production"),
			JWTExpiry:       getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
			OwnerPrivateKey: getEnv("OWNER_PRIVATE_KEY", ""),
		},
		Chain: ChainConfig{
			ChainID:        uint64(getEnvAsInt("CHAIN_ID", 8453)),
			RPCURL:         getEnv("CHAIN_RPC_URL", "https://mainnet.base.org"),
			LocalTransport: getEnv("LOCAL_TRANSPORT_ADDRESS", ""),
			CustodyAddress: getEnv("CUSTODY_ADDRESS", ""),
			FeeCollector:   getEnv("FEE_COLLECTOR_ADDRESS", getEnv("CUSTODY_ADDRESS", "")),
		},
		Fees: FeeDefaults{
			BasisPoints: uint32(getEnvAsInt("FEE_BASIS_POINTS", 10)),
		},
		Attestation: AttestationConfig{
			BaseURL:      getEnv("ATTESTATION_API_URL", "https://iris-api.circle.com"),
			LocalDomain:  uint32(getEnvAsInt("ATTESTATION_LOCAL_DOMAIN", 6)),
			PollInterval: getEnvAsDuration("ATTESTATION_POLL_INTERVAL", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
