// Package module provides a gaz.Module for configuring config loading via CLI flags.
//
// # Overview
//
// This module adds CLI flags for configuration file loading, enabling runtime
// specification of config file path, environment variable prefix, and strict mode.
//
// # Usage
//
// Add the module to your application:
//
//	app := gaz.New(gaz.WithCobra(cmd))
//	app.Use(configmod.New())
//
// This registers the following CLI flags:
//
//	--config        Path to configuration file (optional)
//	--env-prefix    Environment variable prefix (default: GAZ)
//	--config-strict Strict-mode switch (default: true)
//
// # Search Paths
//
// Config.GetSearchPaths returns the current working directory followed by
// $XDG_CONFIG_HOME/{appname} (or ~/.config/{appname} when XDG_CONFIG_HOME is
// not set). The module itself does not configure a search from these paths.
//
// # Strict Mode
//
// The --config-strict value is recorded in Config.Strict and on the App.
// Unknown keys in the config file are accepted whatever its value.
//
// # Environment Variables
//
// The --env-prefix value is recorded in Config.EnvPrefix. The module does not
// bind environment variables with it.
package module
