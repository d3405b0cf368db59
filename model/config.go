package model

// Achievement defines a grantable achievement and the strike reduction that
// comes with it. Delta is stored as a positive magnitude in config and applied
// as a negative delta on the ledger.
type Achievement struct {
	Name      string  `mapstructure:"name"`
	Value     string  `mapstructure:"value"`
	Reduction float64 `mapstructure:"reduction"`
}

// ServerConfig holds the per-guild configuration loaded from config.yaml.
type ServerConfig struct {
	Name             string   `mapstructure:"name"`
	GuildID          string   `mapstructure:"guild_id"`
	Enable           bool     `mapstructure:"enable"`
	AdminRoleIDs     []string `mapstructure:"admin_role_ids"`
	ModeratorRoleIDs []string `mapstructure:"moderator_role_ids"`
	// ClanRoles maps a clan tag to the guild role that marks its members.
	ClanRoles    map[string]string `mapstructure:"clan_roles"`
	Achievements []Achievement     `mapstructure:"achievements"`

	// Confirmation policy for strike reductions.
	RequireDistinctConfirmer bool `mapstructure:"require_distinct_confirmer"`
	ConfirmTimeoutSeconds    int  `mapstructure:"confirm_timeout_seconds"`
}

// Config stores the application configuration.
type Config struct {
	BotToken          string
	AppID             string
	LogChannelID      string // fallback audit channel when a guild has none configured
	DBPath            string
	DeveloperUserIDs  []string
	SuperAdminRoleIDs []string
	ServerConfigs     map[string]ServerConfig
}
