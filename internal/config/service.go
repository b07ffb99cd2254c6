package config

type ServiceConfig struct {
	Name        string        `yaml:"name"`
	Environment string        `yaml:"environment"`
	Version     string        `yaml:"version"`
	ClientURL   string        `yaml:"client_url"`
	Stripe      StripeConfig  `yaml:"stripe"`
	JWT         JWTConfig     `yaml:"jwt"`
	Loops       LoopsConfig   `yaml:"loops"`
	YouTube     YouTubeConfig `yaml:"youtube"`
	Vault       []VaultVideo  `yaml:"vault"`
}

type StripeConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type LoopsConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type YouTubeConfig struct {
	APIKey    string `yaml:"api_key"`
	ChannelID string `yaml:"channel_id"`
	BaseURL   string `yaml:"base_url"`
}

// VaultVideo is one entry of the members-only video catalog.
type VaultVideo struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Category      string `yaml:"category"`
	Duration      string `yaml:"duration"`
	MuxPlaybackID string `yaml:"mux_playback_id"`
}
