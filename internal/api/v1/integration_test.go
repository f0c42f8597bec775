//go:build integration

package v1_test

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"team-collab/configs"
	v1 "team-collab/internal/api/v1"
	"team-collab/internal/config"
	"team-collab/internal/repository"
	"team-collab/pkg/database"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
)

// IntegrationSuite runs the HTTP scenarios against real Postgres and Redis
// containers. Run with: go test -tags integration ./internal/api/v1/...
type IntegrationSuite struct {
	RoutesSuite

	pool      *dockertest.Pool
	resources []*dockertest.Resource
	db        *sqlx.DB
	rdb       *redis.Client
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupSuite() {
	pool, err := dockertest.NewPool("")
	s.Require().NoError(err)
	pool.MaxWait = 2 * time.Minute
	s.Require().NoError(pool.Client.Ping(), "docker is not reachable")
	s.pool = pool

	cfg := testConfig()
	cfg.DBDriver = configs.DriverPostgres
	cfg.DBUser = "postgres"
	cfg.DBPassword = "secret"
	cfg.DBName = "team_collab_test"
	cfg.RedisEnabled = true

	pg := s.run(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + cfg.DBUser,
			"POSTGRES_PASSWORD=" + cfg.DBPassword,
			"POSTGRES_DB=" + cfg.DBName,
		},
	})
	cfg.DBHost = "localhost"
	cfg.DBPort = s.port(pg, "5432/tcp")

	rd := s.run(&dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"})
	cfg.RedisHost = "localhost"
	cfg.RedisPort = s.port(rd, "6379/tcp")

	s.Require().NoError(pool.Retry(func() error {
		db, err := database.ConnectDB(cfg)
		if err != nil {
			return err
		}
		s.db = db
		return nil
	}))
	s.Require().NoError(pool.Retry(func() error {
		rdb, err := database.ConnectRedis(context.Background(), cfg)
		if err != nil {
			return err
		}
		s.rdb = rdb
		return nil
	}))

	s.cfg = cfg
}

func (s *IntegrationSuite) TearDownSuite() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	for _, r := range s.resources {
		if err := s.pool.Purge(r); err != nil {
			s.T().Logf("purge %s: %v", r.Container.Name, err)
		}
	}
}

// SetupTest rebuilds the schema and the app for each test over the shared
// containers.
func (s *IntegrationSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(repository.DeleteAllTable(ctx, s.db))
	s.Require().NoError(repository.CreateTableIfNotExists(ctx, s.db))
	s.Require().NoError(s.rdb.FlushDB(ctx).Err())

	s.deps = config.NewDependencies(s.cfg, s.db, s.rdb)
	var hubCtx context.Context
	hubCtx, s.cancel = context.WithCancel(context.Background())
	go s.deps.Hub.Run(hubCtx)

	s.app = v1.NewApp(s.cfg, s.deps.Handlers(), s.deps.Issuer)
}

// TearDownTest keeps the shared connection open.
func (s *IntegrationSuite) TearDownTest() {
	s.cancel()
}

func (s *IntegrationSuite) TestUserCacheIsFilledAndInvalidated() {
	ctx := context.Background()
	id, token := s.signup("Alice", "alice@x.com")
	key := fmt.Sprintf("user:%d", id)

	status, _ := s.request(http.MethodGet, "/users/profile", token, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(1), s.rdb.Exists(ctx, key).Val())

	cached, err := s.rdb.Get(ctx, key).Result()
	s.Require().NoError(err)
	s.NotContains(cached, "$2a$", "password hashes are never cached")

	status, _ = s.request(http.MethodPut, "/users/profile", token, map[string]string{"name": "Alicia"})
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(0), s.rdb.Exists(ctx, key).Val())
}

func (s *IntegrationSuite) TestHealthReportsRedis() {
	status, body := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, status)
	s.Equal(map[string]any{"database": "ok", "redis": "ok"}, body["services"])
}

// TestHealthAndUnknownRoute overrides the SQLite expectation of a disabled
// cache.
func (s *IntegrationSuite) TestHealthAndUnknownRoute() {
	status, body := s.request(http.MethodGet, "/nope", "", nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("API endpoint not found", body["message"])
}

func (s *IntegrationSuite) run(opts *dockertest.RunOptions) *dockertest.Resource {
	resource, err := s.pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err)
	_ = resource.Expire(300)
	s.resources = append(s.resources, resource)
	return resource
}

func (s *IntegrationSuite) port(resource *dockertest.Resource, id string) int {
	port, err := strconv.Atoi(resource.GetPort(id))
	s.Require().NoError(err)
	return port
}
