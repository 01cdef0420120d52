// Package config loads syncstream application configuration.
//
// It uses Viper to read a YAML file and environment variables, and godotenv
// to load .env files, following the search order cmd/<service>/config.yml,
// config/config.yml, config.yml.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("syncstream-demo", &cfg)
//
// Secrets are kept out of the main file: a connection template such as
// "store://{uri.userid}:{uri.password}@{uri.domain}" is expanded from a
// separate secrets file with ExpandSecrets, which also returns the
// unexpanded template for logging.
package config
