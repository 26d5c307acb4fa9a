package controller

import (
	"io"
	"log/slog"

	"finboard/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}
