package version

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Значения подставляются при сборке: -ldflags "-X .../internal/version.version=v1.2.3".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

// GetVersion возвращает версию сборки.
func GetVersion() string { return version }

// GetCommit возвращает хэш коммита сборки.
func GetCommit() string { return commit }

// GetDate возвращает дату сборки.
func GetDate() string { return date }

func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}

// Fields возвращает данные сборки для стартового лог-сообщения.
func Fields() log.Fields {
	return log.Fields{"version": version, "commit": commit, "build_date": date}
}
