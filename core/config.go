package core

import (
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host               string
		Addr               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		MaxUploadSize      int64
	}

	DatabaseConfig struct {
		Engine        string // postgres | sqlite | mysql | mongodb | inmem
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		Path          string // sqlite file
		MongoURI      string
	}

	MediaConfig struct {
		Backend      string // local | cloudinary
		Dir          string
		BaseURL      string
		UploadURL    string
		UploadPreset string
	}

	Config struct {
		Debug            bool
		TestMode         bool
		AppName          string
		Env              string
		Build            string
		WorkDir          string
		SecretKey        string
		RollbarToken     string
		SendgridApiKey   string
		FrontendBaseURL  string
		defaultFromEmail string

		Server   ServerConfig
		Database DatabaseConfig
		Media    MediaConfig
	}
)

// NewConfig loads the configuration for the current ENV (DEV by default).
// Values come from the environment, optionally seeded by config/.env.<env>.
func NewConfig() *Config {
	conf := viper.New()

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", env == "DEV" || env == "TEST")
	conf.SetDefault("testMode", env == "TEST")
	conf.SetDefault("appName", "LifeTrack")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "k3q!t7-lifetrack-dev-only-$ecret-9w2x(h8)#m0")
	conf.SetDefault("defaultFromEmail", "LifeTrack <noreply@localhost>")
	conf.SetDefault("frontendBaseURL", "http://localhost:8000")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("sendgridApiKey", "")

	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("serverDebugHost", "localhost:4000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 30*24*time.Hour)
	conf.SetDefault("maxUploadSize", int64(5<<20))

	conf.SetDefault("dbEngine", "sqlite")
	conf.SetDefault("dbHost", "localhost")
	conf.SetDefault("dbPort", "")
	conf.SetDefault("dbName", "lifetrack")
	conf.SetDefault("dbUser", "")
	conf.SetDefault("dbPassword", "")
	conf.SetDefault("dbAdminUser", "")
	conf.SetDefault("dbAdminPassword", "")
	conf.SetDefault("dbDisableTLS", true)
	conf.SetDefault("dbPath", "lifetrack.db")
	conf.SetDefault("mongoURI", "mongodb://localhost:27017")

	conf.SetDefault("mediaBackend", "local")
	conf.SetDefault("mediaDir", "media")
	conf.SetDefault("mediaBaseURL", "http://localhost:8000")
	conf.SetDefault("mediaUploadURL", "")
	conf.SetDefault("mediaUploadPreset", "")

	conf.SetEnvPrefix(env)

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		AppName:          conf.GetString("appName"),
		Env:              env,
		Build:            conf.GetString("build"),
		WorkDir:          wd,
		SecretKey:        conf.GetString("secretKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		SendgridApiKey:   conf.GetString("sendgridApiKey"),
		FrontendBaseURL:  conf.GetString("frontendBaseURL"),
		defaultFromEmail: conf.GetString("defaultFromEmail"),
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Addr:               conf.GetString("serverAddr"),
			DebugHost:          conf.GetString("serverDebugHost"),
			ShutdownTimeout:    conf.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
			MaxUploadSize:      conf.GetInt64("maxUploadSize"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("dbEngine"),
			Host:          conf.GetString("dbHost"),
			Port:          conf.GetString("dbPort"),
			Name:          conf.GetString("dbName"),
			User:          conf.GetString("dbUser"),
			Password:      conf.GetString("dbPassword"),
			AdminUser:     conf.GetString("dbAdminUser"),
			AdminPassword: conf.GetString("dbAdminPassword"),
			DisableTLS:    conf.GetBool("dbDisableTLS"),
			Path:          conf.GetString("dbPath"),
			MongoURI:      conf.GetString("mongoURI"),
		},
		Media: MediaConfig{
			Backend:      conf.GetString("mediaBackend"),
			Dir:          conf.GetString("mediaDir"),
			BaseURL:      conf.GetString("mediaBaseURL"),
			UploadURL:    conf.GetString("mediaUploadURL"),
			UploadPreset: conf.GetString("mediaUploadPreset"),
		},
	}
}

// DefaultFromEmail parses the configured sender; it falls back to a bare address.
func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
	}
	return *addr
}

// SetDefaultFromEmail is used by tests which build a Config by hand.
func (c *Config) SetDefaultFromEmail(s string) { c.defaultFromEmail = s }

// Address returns the host:port of the database server.
func (d DatabaseConfig) Address() string {
	if d.Port == "" {
		return d.Host
	}
	return net.JoinHostPort(d.Host, d.Port)
}

func (d DatabaseConfig) String() string {
	return fmt.Sprintf("%s://%s/%s", d.Engine, d.Address(), d.Name)
}
