package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends de persistencia soportados.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Políticas para el listado de empresas (GET /api/companies).
const (
	CompaniesListAuthenticated = "authenticated"
	CompaniesListAdmin         = "admin"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Upload   UploadConfig
	Seed     SeedConfig
	Policy   PolicyConfig
	Security SecurityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	Storage     string // postgres, memory
	DocsEnabled bool
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de los tokens de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// TTL duración de validez de un token.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Expiration) * time.Minute
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UploadConfig configuración de imágenes subidas (avatares y productos).
type UploadConfig struct {
	Dir        string // directorio en disco
	PublicPath string // prefijo público desde el que se sirven
	MaxBytes   int64
}

// SeedConfig configuración del administrador inicial.
type SeedConfig struct {
	AdminPassword string
}

// PolicyConfig decisiones de acceso que no están cerradas y se dejan configurables.
type PolicyConfig struct {
	CompaniesList string // authenticated, admin
}

// SecurityConfig parámetros de hashing.
type SecurityConfig struct {
	BcryptCost int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, PORT, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "backoffice-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			Storage:     getString(v, "STORAGE_DRIVER", StoragePostgres),
			DocsEnabled: getBool(v, "DOCS_ENABLED", true),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "backoffice"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 24*60),
			Issuer:     getString(v, "JWT_ISSUER", "backoffice-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "PORT", getInt(v, "HTTP_PORT", 3001)),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Upload: UploadConfig{
			Dir:        getString(v, "UPLOAD_DIR", "uploads"),
			PublicPath: getString(v, "UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxBytes:   int64(getInt(v, "UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
		Seed: SeedConfig{
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", "admin123"),
		},
		Policy: PolicyConfig{
			CompaniesList: getString(v, "COMPANIES_LIST_POLICY", CompaniesListAuthenticated),
		},
		Security: SecurityConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es requerido")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	switch c.App.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.App.Storage)
	}
	switch c.Policy.CompaniesList {
	case CompaniesListAuthenticated, CompaniesListAdmin:
	default:
		return fmt.Errorf("config: COMPANIES_LIST_POLICY desconocida %q", c.Policy.CompaniesList)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("config: UPLOAD_MAX_BYTES debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
