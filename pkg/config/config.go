package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process settings shared by the server, the Vercel entry
// point and the CLI.
type Config struct {
	Port           string
	GinMode        string
	DatabaseURL    string
	DataPath       string
	JWTSecret      string
	MasterSecret   string
	AdminUsername  string
	AdminPassword  string
	LogLevel       string
	LeaveShiftName string
	MaxRangeDays   int
	RateLimit      int
}

// envPaths are tried in order; the first .env found is loaded.
var envPaths = []string{".env", "../.env", "../../.env"}

// Load reads .env (if present) and the environment into a Config.
// Variables already set in the environment win over .env values.
func Load() Config {
	loadDotEnv()
	return FromViper(newViper(""))
}

// LoadPrefixed is Load for tools that namespace their variables, e.g.
// ROSTER_LOG_LEVEL with prefix "ROSTER".
func LoadPrefixed(prefix string) *viper.Viper {
	loadDotEnv()
	return newViper(prefix)
}

func loadDotEnv() {
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func newViper(prefix string) *viper.Viper {
	v := viper.New()
	if prefix != "" {
		v.SetEnvPrefix(prefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8000")
	v.SetDefault("data_path", "roster.db")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "admin123")
	v.SetDefault("log_level", "info")
	v.SetDefault("leave_shift_name", "Annual Leave")
	v.SetDefault("max_range_days", 1098)
	v.SetDefault("default_rate_limit", 10000)
	return v
}

// FromViper maps viper keys onto a Config.
func FromViper(v *viper.Viper) Config {
	return Config{
		Port:           v.GetString("port"),
		GinMode:        v.GetString("gin_mode"),
		DatabaseURL:    v.GetString("database_url"),
		DataPath:       v.GetString("data_path"),
		JWTSecret:      v.GetString("jwt_secret"),
		MasterSecret:   v.GetString("api_master_secret"),
		AdminUsername:  v.GetString("admin_username"),
		AdminPassword:  v.GetString("admin_password"),
		LogLevel:       v.GetString("log_level"),
		LeaveShiftName: v.GetString("leave_shift_name"),
		MaxRangeDays:   v.GetInt("max_range_days"),
		RateLimit:      v.GetInt("default_rate_limit"),
	}
}
