// Package config loads typed configuration from environment variables.
//
// Structs are described with github.com/caarlos0/env/v11 tags and parsed by
// Load. Values from a .env file (github.com/joho/godotenv) are applied first
// but never override variables already present in the environment.
//
// Every package owns its config struct (pg.Config, email.Config,
// httpserver.Config), and the binary loads each one at startup:
//
//	var pgCfg pg.Config
//	if err := config.Load(&pgCfg); err != nil {
//	    return err
//	}
//
// Parsed values are cached per type. Tests that change the environment call
// ResetCache.
//
// Errors: ErrParsingConfig, ErrInvalidConfigType, ErrNilPointer and
// ErrLoadingEnvFile, all comparable with errors.Is.
package config
