// Package config loads and validates Caliper configuration.
//
// Configuration is layered, later layers winning:
//
//  1. Built-in defaults
//  2. The YAML configuration file (.caliper.yaml by default)
//  3. CALIPER_* environment variables
//
// File values are deep-merged over the defaults, so a config file
// only needs to state what it changes. After merging, the final
// configuration is validated; validation failures name the offending
// field.
package config
