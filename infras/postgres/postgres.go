package postgres

//nolint:revive
import (
	"booktable/config"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName                = "postgres"
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

var ErrNotConnected = errors.New("database connection is not established")

// Dialect builds postgres statements with numbered placeholders.
var Dialect = goqu.Dialect(driverName)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}
}

// NewFromDB shares a single handle for reads and writes.
func NewFromDB(db *sqlx.DB) *Connection {
	return &Connection{Read: db, Write: db}
}

func (c *Connection) Ping() error {
	if c.Read == nil || c.Write == nil {
		return ErrNotConnected
	}

	if err := c.Write.Ping(); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if err := c.Read.Ping(); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	w := config.DB.Postgres.Write

	return CreatePostgresConnection(
		"write",
		Descriptor(w.Username, w.Password, w.Host, w.Port, getDBName(config, w.Name), w.SSLMode, w.Timezone),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	r := config.DB.Postgres.Read

	return CreatePostgresConnection(
		"read",
		Descriptor(r.Username, r.Password, r.Host, r.Port, getDBName(config, r.Name), r.SSLMode, r.Timezone),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// Descriptor builds a lib/pq connection URL.
func Descriptor(username, password, host, port, dbName, sslMode, timezone string) string {
	u := url.URL{
		Scheme: driverName,
		User:   url.UserPassword(username, password),
		Host:   net.JoinHostPort(host, port),
		Path:   dbName,
	}

	q := u.Query()
	if sslMode != "" {
		q.Set("sslmode", sslMode)
	}

	if timezone != "" {
		q.Set("timezone", timezone)
	}

	u.RawQuery = q.Encode()

	return u.String()
}

// CreatePostgresConnection retries maxRetry times and returns nil when every attempt fails.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) *sqlx.DB {
	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect(driverName, descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Error().Str("name", name).Int("maxRetry", maxRetry).Msg("Giving up connecting to database")

	return nil
}
