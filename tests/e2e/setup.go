//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"hotel-booking/cmd/bootstrap"
	"hotel-booking/cmd/bootstrap/components"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "hotel"
	pgPassword = "hotelpass"
	pgPort     = "5432/tcp"

	// Bookings and seeded house rules are evaluated in this zone.
	houseTimeZone = "Asia/Ho_Chi_Minh"
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgEndpoint  endpoint
)

type endpoint struct {
	Host string
	Port nat.Port
}

func (e endpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.Host, e.Port.Port(), database)
}

// ホテル予約用の PostgreSQL を一度だけ起動する。テストプロセス内で共有
func sharedPostgres(t *testing.T) endpoint {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				Name:         "hotel-booking-e2e-postgres",
				ExposedPorts: []string{pgPort},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
					"TZ":                houseTimeZone,
				},
				// 予約の排他制約テストは並行書き込みが多いので耐久性は捨てる
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return endpoint{Host: host, Port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "hotel-booking-e2e"},
			},
			Started: true,
		})
		require.NoError(t, err, "PostgreSQLコンテナの起動に失敗")
		pgContainer = c

		port, err := c.MappedPort(ctx, pgPort)
		require.NoError(t, err, "ポートの取得に失敗")
		host, err := c.Host(ctx)
		require.NoError(t, err, "ホストの取得に失敗")
		pgEndpoint = endpoint{Host: host, Port: port}

		slog.Info("PostgreSQLコンテナを起動しました", "host", host, "port", port.Port())
	})
	require.NotNil(t, pgContainer, "PostgreSQLコンテナが起動していません")
	return pgEndpoint
}

// スイートごとに専用データベースを作成し、スキーマと客室・割引コードのマスタを投入する
func createHotelDatabase(t *testing.T, ep endpoint) (*pgxpool.Pool, config.DBConfig) {
	name := "hotel_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 並列スイートが同時に CREATE DATABASE するとテンプレートのロックで失敗することがある
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("データベース作成を再試行中", "attempt", attempt, "error", err.Error())
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dropCancel()
		dropper, err := pgxpool.New(dropCtx, ep.dsn("postgres"))
		if err != nil {
			slog.Warn("削除用の接続に失敗しました", "database", name, "error", err.Error())
			return
		}
		defer dropper.Close()
		if _, err := dropper.Exec(dropCtx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     ep.Host,
		Port:     ep.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: houseTimeZone,
	}

	pool, err := db.Connect(ctx, dbConfig)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(pool.Close)

	require.NoError(t, applySchema(ctx, pool), "スキーマの適用に失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "客室・サービス・割引コードの投入に失敗")

	return pool, dbConfig
}

// applySchema runs every migrations/*.sql file in name order.
func applySchema(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

// go test runs each package in its own directory, so walk up to the module root.
func migrationsDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("go.mod not found above %s", wd)
		}
	}
}

// 本番と同じ fx モジュール構成で起動する。DB と設定だけ差し替え
func startHotelApp(t *testing.T, pool *pgxpool.Pool, dbConfig config.DBConfig) (*gin.Engine, config.Config) {
	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.House.TimeZone = houseTimeZone

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *pgxpool.Pool { return pool }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		// REDIS_URL is empty, so the catalog is read straight from Postgres
		bootstrap.CacheModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		// notifications are disabled in the test config; only the idempotency cleanup is scheduled
		bootstrap.WorkerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	return router, cfg
}

// SharedSuite boots one database and app per suite and resets bookings before every subtest.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	pool, dbConfig := createHotelDatabase(t, sharedPostgres(t))
	s.DB = pool
	s.Router, s.Config = startHotelApp(t, pool, dbConfig)
	require.NotNil(t, s.Router, "Routerのセットアップに失敗")
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "データベースの初期化に失敗")
}

func (s *SharedSuite) count(query string, args ...any) int {
	var n int
	require.NoError(s.T(), s.DB.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func (s *SharedSuite) BookingCount() int {
	return s.count("SELECT count(*) FROM bookings")
}

func (s *SharedSuite) DiscountUsedCount(code string) int {
	return s.count("SELECT used_count FROM discount_codes WHERE code = $1", code)
}

func (s *SharedSuite) NotificationJobCount() int {
	return s.count("SELECT count(*) FROM notification_jobs")
}
