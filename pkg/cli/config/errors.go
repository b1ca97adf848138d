package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrMissingName       = goerr.New("category name is required")
	ErrDuplicateCategory = goerr.New("duplicate category name")
)

// Context keys for error values
const (
	ConfigPathKey    = "config_path"
	CategoryNameKey  = "category_name"
	CategoryIndexKey = "category_index"
)
