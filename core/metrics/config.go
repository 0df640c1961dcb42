package metrics

// Config holds the metrics export settings.
type Config struct {
	// OtlpEndpoint is the OTLP gRPC collector (host:port or URL). Empty disables export.
	OtlpEndpoint string `mapstructure:"otlp_endpoint" default:""`
	// Insecure forces a plaintext connection to an https endpoint.
	Insecure bool `mapstructure:"insecure" default:"false"`
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `mapstructure:"service_name" default:"fleet-tracker"`
	// IntervalSeconds is the export period.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"30" validate:"gte=1"`
}
