package tier

// Config holds the vendor API settings.
type Config struct {
	BaseURL        string `mapstructure:"base_url" default:"https://platform.tier-services.io" validate:"required,url"`
	ApiKey         string `mapstructure:"api_key" default:""`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"10" validate:"gte=1"`
}
