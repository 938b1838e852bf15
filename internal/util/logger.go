package util

import (
	"strings"

	"go.uber.org/zap"
)

func NewLogger(env string) *zap.SugaredLogger {
	var logger *zap.SugaredLogger

	if strings.EqualFold(env, "production") {
		logger = zap.Must(zap.NewProduction()).Sugar()
	} else {
		logger = zap.Must(zap.NewDevelopment()).Sugar()
	}

	return logger.With("app", GetAppName())
}
