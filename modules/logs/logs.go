package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
)

// Файлы логов с ежедневной ротацией
type LogFiles struct {
	DebugFile io.WriteCloser
	TgLogFile io.WriteCloser
	DBLogFile io.WriteCloser
}

// Открытие логов в каталоге dir; файлы старше maxAge удаляются
func OpenLogs(dir string, maxAge time.Duration) (LogFiles, error) {
	var files LogFiles
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return files, err
	}
	var err error
	if files.DebugFile, err = rotated(dir, "debug", maxAge); err != nil {
		return files, err
	}
	if files.TgLogFile, err = rotated(dir, "tg", maxAge); err != nil {
		files.CloseAll()

		return files, err
	}
	if files.DBLogFile, err = rotated(dir, "db", maxAge); err != nil {
		files.CloseAll()

		return files, err
	}

	return files, nil
}

func rotated(dir, name string, maxAge time.Duration) (*rotatelogs.RotateLogs, error) {
	return rotatelogs.New(
		filepath.Join(dir, name+".%Y-%m-%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, name+".log")),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(maxAge),
	)
}

// Логгер для отладочных сообщений: в консоль и в файл
func (files LogFiles) Debug() *log.Logger {
	return log.New(io.MultiWriter(os.Stderr, files.DebugFile), "", log.LstdFlags)
}

func (files LogFiles) CloseAll() {
	for _, f := range []io.WriteCloser{files.DebugFile, files.TgLogFile, files.DBLogFile} {
		if f != nil {
			f.Close()
		}
	}
}
