// Package config provides configuration loading for the iot-chain core.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by IOTCHAIN_* environment variables. This keeps
// deployments declarative while allowing secrets (broker credentials,
// InfluxDB tokens) to stay out of the config file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
package config
