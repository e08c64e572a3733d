package main

import (
	"log/slog"
	"path/filepath"

	"github.com/scitags/netdev-go/rtnl"
)

var logLevelMap = map[string]slog.Level{
	"trace": rtnl.LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func logReplacements(groups []string, a slog.Attr) slog.Attr {
	// Remove time.
	if a.Key == slog.TimeKey && len(groups) == 0 && !logTimeFlag {
		return slog.Attr{}
	}

	// Remove the directory from the source's filename.
	if a.Key == slog.SourceKey {
		source, ok := a.Value.Any().(*slog.Source)
		if ok {
			source.File = filepath.Base(source.File)
		}
	}

	// Name the custom trace level.
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level == rtnl.LevelTrace {
			return slog.String(a.Key, "TRACE")
		}
	}

	return a
}
