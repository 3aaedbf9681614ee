//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/insights/config"
	"github.com/budget-tracker/insights/internal/infra/db"
	"github.com/budget-tracker/insights/internal/infra/dependency"
	"github.com/budget-tracker/insights/internal/integration/persistence/model"
	"github.com/budget-tracker/insights/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// suite holds the resources shared by every scenario.
type suite struct {
	server      *httptest.Server
	upstream    *mock.ApiMock
	db          *mock.Db
	redis       *redis.Client
	redisServer *miniredis.Miniredis
	injector    *dependency.Injector
}

var (
	suiteOnce sync.Once
	shared    *suite
)

// testContext holds the state of one scenario.
type testContext struct {
	*suite
	client      *http.Client
	headers     map[string]string
	accessToken string
	sessionID   string
	response    *response
}

type response struct {
	status int
	body   any
}

func startSuite() *suite {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		upstream := mock.NewApiServer()
		upstream.Start()

		database := mock.NewDb(map[string]any{
			"preferences": &model.PreferenceModel{},
		})
		client, server := mock.NewRedis()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Upstream.BaseURL = upstream.GetUrl()
		cfg.Upstream.Timeout = 5 * time.Second
		cfg.Aggregation.Currency = "USD"
		cfg.Aggregation.TopNDefault = 5

		injector := dependency.NewInjector(cfg, database.Database, db.NewRedisFromClient(client))
		engine := injector.Router.Setup(cfg.Server.Environment)

		shared = &suite{
			server:      httptest.NewServer(engine),
			upstream:    upstream,
			db:          database,
			redis:       client,
			redisServer: server,
			injector:    injector,
		}
	})
	return shared
}

// InitializeTestSuite tears down the shared resources after the last scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.upstream.Close()
		shared.redisServer.Close()
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

	// Session steps
	ctx.Given(`^I have a guest session$`, test.iHaveAGuestSession)
	ctx.Given(`^I am signed in as user "([^"]*)"$`, test.iAmSignedInAsUser)
	ctx.Given(`^I have an expired guest session$`, test.iHaveAnExpiredGuestSession)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Upstream steps
	ctx.Given(`^the upstream "([^"]*)" endpoint returns:$`, test.theUpstreamEndpointReturns)
	ctx.Given(`^the upstream "([^"]*)" endpoint fails with status (\d+)$`, test.theUpstreamEndpointFailsWithStatus)
	ctx.Then(`^the upstream "([^"]*)" endpoint should have received the session token$`, test.theUpstreamEndpointShouldHaveReceivedTheSessionToken)
	ctx.Then(`^the upstream "([^"]*)" endpoint should have been called (\d+) times?$`, test.theUpstreamEndpointShouldHaveBeenCalled)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^redis should hold (\d+) preferences? for the guest session$`, test.redisShouldHoldPreferencesForTheGuestSession)
}

func (t *testContext) before() error {
	t.suite = startSuite()
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.sessionID = ""
	t.response = nil

	t.upstream.Reset()
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}
