package repository

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/user/homepage/internal/utils"
)

// testDSN 优先取 TEST_DATABASE_URL，否则在 Docker 中启动临时 postgres；都没有时数据库测试跳过
var testDSN string

func TestMain(m *testing.M) {
	testDSN = os.Getenv("TEST_DATABASE_URL")

	var container testcontainers.Container
	if testDSN == "" && dockerAvailable() {
		c, dsn, err := startPostgres(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "启动 postgres 容器失败: %v\n", err)
		} else {
			container, testDSN = c, dsn
		}
	}

	code := m.Run()

	if container != nil {
		_ = container.Terminate(context.Background())
	}
	os.Exit(code)
}

func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "homepage_test",
		},
		// 初始化阶段会重启一次，第二条 ready 日志后才可连接
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", err
	}

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/homepage_test?sslmode=disable", host, port.Port())
	return container, dsn, nil
}

// openTestDB 连接测试库并清空表与进程缓存
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDSN == "" {
		t.Skip("未设置 TEST_DATABASE_URL 且 Docker 不可用")
	}

	db, err := InitDB(testDSN)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.Exec("TRUNCATE search_logs, trending_keywords, feedbacks RESTART IDENTITY").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	utils.InitCache()
	return db
}
