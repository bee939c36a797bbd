package postgres

import (
	"fmt"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/alimikegami/point-of-sales/payment-service/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

var lock = &sync.Mutex{}
var db *sqlx.DB

func DSN(conf config.PostgreSQLConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		conf.DBHost, conf.DBPort, conf.DBUsername, conf.DBPassword, conf.DBName)
}

func GetDBInstance(conf config.PostgreSQLConfig) (*sqlx.DB, error) {
	lock.Lock()
	defer lock.Unlock()

	if db != nil {
		log.Info().Str("component", "GetDBInstance").Msg("instance is already created")
		return db, nil
	}

	sqlDB, err := otelsql.Open("postgres", DSN(conf),
		otelsql.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBNameKey.String(conf.DBName),
		),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			DisableQuery: true,
		}),
	)
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	instance := sqlx.NewDb(sqlDB, "postgres")
	if err := instance.Ping(); err != nil {
		instance.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	db = instance
	return db, nil
}
