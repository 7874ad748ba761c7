package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger: human-readable console output plus a
// size-rotated file under dir. An unknown level falls back to info.
func New(dir string, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	_ = os.MkdirAll(dir, 0o755)
	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "wafreport.log"),
		MaxSize:    100, // megabytes
		MaxBackups: 5,
	}
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}

	return zerolog.New(zerolog.MultiLevelWriter(console, file)).
		Level(lvl).
		With().Timestamp().
		Logger()
}
