package utils

import (
	"os"

	"go.uber.org/zap"
)

// InitLogger installs the global zap logger. Production config when ENV is
// "production", human-readable development config otherwise.
func InitLogger() {
	var logger *zap.Logger
	var err error

	if os.Getenv("ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(logger)
}
