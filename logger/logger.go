package logger

import "go.uber.org/zap"

// L is safe to use before Init (no-op).
var L = zap.NewNop()

func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "prod" || env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	L = l
	return nil
}

func Info(msg string, fields ...zap.Field)  { L.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L.Error(msg, fields...) }

func Sync() { _ = L.Sync() }
