package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env if present; plain environment variables win otherwise.
	_ = godotenv.Load()
}

// Config is the full application configuration surface.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Steam  SteamConfig
	Admin  AdminConfig
}

// ServerConfig holds HTTP server and logging settings.
type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"8080"`
	DBDSN   string `envconfig:"DB_DSN" default:"showroom.db"`
	LogFile string `envconfig:"LOG_FILE" default:"./showroom.log"`
}

// StoreConfig locates the persisted inventory document.
type StoreConfig struct {
	DataFile string `envconfig:"DATA_FILE" default:"./data/inventory_data.json"`
}

// SteamConfig identifies the account and inventory namespace to pull, plus
// the credentials for the Web API.
type SteamConfig struct {
	APIURL             string `envconfig:"STEAM_API_URL" default:"https://api.steampowered.com/IEconService/GetInventoryItemsWithDescriptions/v1/"`
	AccessToken        string `envconfig:"STEAM_ACCESS_TOKEN"`
	AccessTokenURL     string `envconfig:"STEAM_ACCESS_TOKEN_URL" default:"https://store.steampowered.com/pointssummary/ajaxgetasyncconfig"`
	SteamID            string `envconfig:"STEAM_ID"`
	AppID              string `envconfig:"STEAM_APP_ID" default:"730"`
	ContextID          string `envconfig:"STEAM_CONTEXT_ID" default:"2"`
	ProtectedContextID string `envconfig:"STEAM_PROTECTED_CONTEXT_ID" default:"16"`
}

// AdminConfig seeds the operator account.
type AdminConfig struct {
	Email    string `envconfig:"ADMIN_EMAIL" default:"admin@showroom.local"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

// InventoryURLs returns the community inventory endpoints an operator can
// open to copy raw JSON for manual import, for both the main and the
// trade-protected context.
func (s *SteamConfig) InventoryURLs() map[string]string {
	base := "https://steamcommunity.com/inventory"
	return map[string]string{
		"main":      fmt.Sprintf("%s/%s/%s/%s?l=english&count=2500", base, s.SteamID, s.AppID, s.ContextID),
		"protected": fmt.Sprintf("%s/%s/%s/%s?l=english&count=2500", base, s.SteamID, s.AppID, s.ProtectedContextID),
	}
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s DATA_FILE=%s STEAM_ID=%s APP_ID=%s",
		cfg.Server.Port, cfg.Server.DBDSN, cfg.Store.DataFile, cfg.Steam.SteamID, cfg.Steam.AppID)
	return cfg, nil
}
