// Package config provides functionality for loading and validating application configuration.
//
// Settings are plain structs carrying `mapstructure` tags so they can be filled by viper from a
// YAML file and environment variables, and `validate` tags checked with go-playground/validator.
package config
