//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/budgetly/backend/test/integration/steps"
)

// TestFeatures runs the feature files under features/ against a fully wired
// in-process server. Scenarios share one in-memory database, so they run
// sequentially and in file order.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                 "budgetly-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"features"},
			Output:      colors.Colored(os.Stdout),
			Concurrency: 1,
			Randomize:   0,
			Strict:      true,
			TestingT:    t,
			Tags:        os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
