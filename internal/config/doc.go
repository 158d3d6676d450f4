// Package config defines the application configuration structure and its
// environment-based loading.
package config
