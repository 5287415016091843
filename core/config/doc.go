// Package config loads the application configuration.
//
// Values come from the environment, optionally seeded from a .env file, and
// fall back to the `default` struct tags of each partial configuration.
// Nested keys map to upper-case variables joined by underscores:
//
//	MERGE_RULE=always          -> merge.rule
//	MERGE_WORKERS=4            -> merge.workers
//	BACKUP_ENABLED=true        -> backup.enabled
//	DATABASE_DRIVER=mysql      -> database.driver
package config
