package logging

import "go.uber.org/zap"

func NewSugaredLogger(environment string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("cannot initialize zap: " + err.Error())
	}
	return logger.Sugar()
}
