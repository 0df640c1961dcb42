package broker

// Config holds the MQTT log feed settings. An empty URL disables the feed.
type Config struct {
	URL            string `mapstructure:"url" default:""`
	ClientID       string `mapstructure:"client_id" default:"fleet-tracker"`
	Username       string `mapstructure:"username" default:""`
	Password       string `mapstructure:"password" default:""`
	Topic          string `mapstructure:"topic" default:"fleet/{zone}/logs" validate:"required"`
	QoS            int    `mapstructure:"qos" default:"1" validate:"gte=0,lte=2"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"10" validate:"gte=1"`
}
