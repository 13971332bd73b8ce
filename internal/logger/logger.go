package logger

import (
    "os"
    "time"

    "github.com/natefinch/lumberjack"
    logrus "github.com/sirupsen/logrus"
)

// Setup initializes Logrus with a rotating file sink. The level comes
// from LOG_LEVEL (default info); field devices generate a lot of
// submission traffic, so debug stays opt-in.
func Setup() {
    rotator := &lumberjack.Logger{
        Filename:   "./logs/rollout.log",
        MaxSize:    10,  // megabytes
        MaxBackups: 7,   // keep up to 7 old files
        MaxAge:     7,   // days
        Compress:   true,
    }

    logrus.SetOutput(rotator)
    logrus.SetFormatter(&logrus.TextFormatter{
        FullTimestamp:   true,
        TimestampFormat: time.RFC3339,
    })

    level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
    if err != nil {
        level = logrus.InfoLevel
    }
    logrus.SetLevel(level)
}

// GormLogger returns the standard Logrus logger for GORM
func GormLogger() *logrus.Logger {
    return logrus.StandardLogger()
}
