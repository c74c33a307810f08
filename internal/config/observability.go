package config

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TODO_OTEL_ENABLED" envDefault:"false"`
	ServiceName string `env:"TODO_OTEL_SERVICE_NAME" envDefault:"eisen"`
}
