package database

import (
	"fmt"
	"io"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"xorm.io/xorm"
	xormlog "xorm.io/xorm/log"
	"xorm.io/xorm/names"
)

// Параметры подключения к БД
//
// Для sqlite3 в Schema указывается путь к файлу
type DB struct {
	Driver string
	User   string
	Pass   string
	Host   string
	Schema string
}

func (db DB) DSN() string {
	if db.Driver == "sqlite3" {
		return fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", db.Schema)
	}
	host := db.Host
	if host == "" {
		host = "localhost:3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true", db.User, db.Pass, host, db.Schema)
}

// Подключение к БД и синхронизация таблиц
//
// Запросы пишутся в logFile (может быть nil)
func Connect(db DB, logFile io.Writer) (*xorm.Engine, error) {
	if db.Driver == "" {
		db.Driver = "mysql"
	}
	engine, err := xorm.NewEngine(db.Driver, db.DSN())
	if err != nil {
		return nil, err
	}
	if logFile != nil {
		engine.SetLogger(xormlog.NewSimpleLogger(logFile))
		engine.ShowSQL(true)
	}
	engine.SetMapper(names.SameMapper{})

	if err := engine.Sync(&ChatUser{}, &Feedback{}); err != nil {
		return nil, err
	}

	return engine, nil
}
