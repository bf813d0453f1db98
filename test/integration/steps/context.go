//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecoimpact/backend/config"
	"github.com/ecoimpact/backend/internal/infra/db"
	"github.com/ecoimpact/backend/internal/infra/dependency"
	"github.com/ecoimpact/backend/internal/infra/observability"
	"github.com/ecoimpact/backend/internal/integration/cache"
	"github.com/ecoimpact/backend/internal/integration/persistence/model"
	"github.com/ecoimpact/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	accessToken  string
	suggestionID string
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	testDB         *mock.Db
	testTime       *mock.Time
	testInjector   *dependency.Injector
	testServerPort int
)

// InitializeTestSuite prepares the shared database, cache and clock.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("JWT_SECRET", testJWTSecret)

		testDB = mock.NewDb(model.All())
		testTime = mock.NewTime()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Data setup steps
	ctx.Given(`^the demo data is loaded$`, test.theDemoDataIsLoaded)
	ctx.Given(`^user "([^"]*)" has the transactions:$`, test.userHasTheTransactions)
	ctx.Given(`^the leaderboard is refreshed for "([^"]*)"$`, test.theLeaderboardIsRefreshedFor)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAsWithPassword)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.uri = fmt.Sprintf("http://localhost:%d", testServerPort)
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.suggestionID = ""

	testTime.Reset()
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return testDB.ClearDB()
}

// startServer wires the application the way cmd/api does, with SQLite,
// miniredis and the mock clock in place of the real backends.
func (t *testContext) startServer() error {
	var initErr error
	serverInit.Do(func() {
		cfg := config.Load()
		redisClient := mock.NewRedis()

		injector, err := dependency.NewInjector(cfg, db.Wrap(testDB.DbConn), dependency.Options{
			Now:        func() time.Time { return testTime.Now().UTC() },
			Cache:      cache.NewRedisSnapshotCache(redisClient, cfg.Redis.SnapshotTTL),
			BcryptCost: bcrypt.MinCost,
			Metrics:    observability.NewMetrics(),
		})
		if err != nil {
			initErr = err
			return
		}
		testInjector = injector

		engine := injector.Router.Setup("test")
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if initErr != nil {
		return initErr
	}
	if testInjector == nil {
		return fmt.Errorf("test server failed to start")
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("test server did not become ready on port %d", testServerPort)
}
