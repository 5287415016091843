// Package database opens the gorm connection backing the merge journal.
//
// sqlite is the default so a single operator can keep history next to the
// worlds they merge; mysql is available for shared setups.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Merge journal unavailable", zap.Error(err))
//	}
package database
