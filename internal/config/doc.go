// Package config provides configuration loading, merging, and validation
// facilities for shelf-sync.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. A .env file (loaded into the process environment)
//  3. Environment variables
//  4. Command-line flags
//  5. JSON config file
//
// The entry points are [GetClientConfig] for the sync client and
// [GetServerConfig] for the reference backup server.
package config
