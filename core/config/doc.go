// Package config provides configuration management for the fleet tracker.
//
// It loads an optional .env file with godotenv, registers every key with its default
// through the struct tags, maps environment variables onto nested keys with Viper and
// validates the result with go-playground/validator.
//
// # Configuration Structure
//
//   - Poller: interval, static zones, zones file, concurrency limit
//   - Tier: vendor base URL, API key, request timeout
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the raw payload archive switch
//   - Broker: MQTT URL and topic of the log feed
//   - Metrics: OTLP collector endpoint
//   - Server: status API switch, port and API key
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Poller.IntervalSeconds)
package config
