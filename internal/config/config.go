package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Siigo          Siigo          `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Analytics      Analytics      `mapstructure:",squash"`
	SnapshotWarmer SnapshotWarmer `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Siigo concentra as credenciais e limites da integração com o SIIGO
type Siigo struct {
	BaseURL          string        `mapstructure:"siigo_base_url"`
	Username         string        `mapstructure:"siigo_username"`
	AccessKey        string        `mapstructure:"siigo_access_key"`
	PartnerID        string        `mapstructure:"siigo_partner_id"`
	PageSize         int           `mapstructure:"siigo_page_size"`
	QuickMaxPages    int           `mapstructure:"siigo_quick_max_pages"`
	FullMaxPages     int           `mapstructure:"siigo_full_max_pages"`
	RequestTimeout   time.Duration `mapstructure:"siigo_request_timeout"`
	PageMaxRetries   int           `mapstructure:"siigo_page_max_retries"`
	ConcurrentFetch  bool          `mapstructure:"siigo_concurrent_fetch"`
	MaxConcurrency   int           `mapstructure:"siigo_max_concurrency"`
	TokenSafetyDelta time.Duration `mapstructure:"siigo_token_safety_delta"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Analytics controla o cache de snapshot de compras usado pelo relatório
type Analytics struct {
	SnapshotTTL      time.Duration `mapstructure:"analytics_snapshot_ttl"`
	TopSuppliers     int           `mapstructure:"analytics_top_suppliers"`
	TopSuppliersFull int           `mapstructure:"analytics_top_suppliers_full"`
	RecentInvoices   int           `mapstructure:"analytics_recent_invoices"`
	WindowMonths     int           `mapstructure:"analytics_window_months"`
}

type SnapshotWarmer struct {
	CronSchedule string `mapstructure:"snapshot_warmer_cron"`
	Enabled      bool   `mapstructure:"snapshot_warmer_enabled"`
	WindowDays   int    `mapstructure:"snapshot_warmer_window_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/invoicing")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SIIGO_BASE_URL", "https://api.siigo.com")
	viper.SetDefault("SIIGO_USERNAME", "your_username")
	viper.SetDefault("SIIGO_ACCESS_KEY", "your_access_key") // ONLY LOCAL
	viper.SetDefault("SIIGO_PARTNER_ID", "invoicing-api")
	viper.SetDefault("SIIGO_PAGE_SIZE", 100)
	viper.SetDefault("SIIGO_QUICK_MAX_PAGES", 5)
	viper.SetDefault("SIIGO_FULL_MAX_PAGES", 500)
	viper.SetDefault("SIIGO_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("SIIGO_PAGE_MAX_RETRIES", 3)
	viper.SetDefault("SIIGO_CONCURRENT_FETCH", true)
	viper.SetDefault("SIIGO_MAX_CONCURRENCY", 4)
	viper.SetDefault("SIIGO_TOKEN_SAFETY_DELTA", "60s")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("ANALYTICS_SNAPSHOT_TTL", "5m")
	viper.SetDefault("ANALYTICS_TOP_SUPPLIERS", 5)
	viper.SetDefault("ANALYTICS_TOP_SUPPLIERS_FULL", 15)
	viper.SetDefault("ANALYTICS_RECENT_INVOICES", 10)
	viper.SetDefault("ANALYTICS_WINDOW_MONTHS", 6)

	viper.SetDefault("SNAPSHOT_WARMER_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("SNAPSHOT_WARMER_ENABLED", false)
	viper.SetDefault("SNAPSHOT_WARMER_WINDOW_DAYS", 90)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
