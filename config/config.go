package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"strike-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and config.yaml.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	logChannelID := os.Getenv("LOG_CHANNEL_ID")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, fallback audit logging will be disabled")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/strikes.db"
	}

	cfg := &model.Config{
		BotToken:          token,
		AppID:             appID,
		LogChannelID:      logChannelID,
		DBPath:            dbPath,
		DeveloperUserIDs:  splitIDs(os.Getenv("DEVELOPER_USER_IDS")),
		SuperAdminRoleIDs: splitIDs(os.Getenv("SUPER_ADMIN_ROLE_IDS")),
		ServerConfigs:     make(map[string]model.ServerConfig),
	}

	if err := loadServerConfigs(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadServerConfigs reads the per-guild configuration from config.yaml.
func loadServerConfigs(cfg *model.Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("data")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: config.yaml not found, no guilds configured")
			return nil
		}
		return fmt.Errorf("failed to read config.yaml: %w", err)
	}

	var fileCfg struct {
		Servers []model.ServerConfig `mapstructure:"servers"`
	}
	if err := v.Unmarshal(&fileCfg); err != nil {
		return fmt.Errorf("failed to unmarshal config.yaml: %w", err)
	}

	for _, serverCfg := range fileCfg.Servers {
		if serverCfg.GuildID == "" {
			log.Printf("Warning: skipping server config %q with empty guild_id", serverCfg.Name)
			continue
		}
		if serverCfg.ConfirmTimeoutSeconds <= 0 {
			serverCfg.ConfirmTimeoutSeconds = 300
		}
		cfg.ServerConfigs[serverCfg.GuildID] = serverCfg
	}

	return nil
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
