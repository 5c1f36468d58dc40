package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanshika-srivastava/coretest/test/integration/harness"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantExitCode int
		validate     func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult)
	}{
		{
			name:         "set uncomments a commented key",
			args:         []string{"config", "set", "port", "8080"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertConfigHasLine(t, env, "port: 8080")
				assert.NotContains(t, env.ReadConfig(), "# port: 3567")
			},
		},
		{
			name:         "set appends an absent key",
			args:         []string{"config", "set", "api_keys", "abc"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertConfigHasLine(t, env, "api_keys: abc")
			},
		},
		{
			name:         "comment out an active key",
			args:         []string{"config", "comment", "host"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertConfigHasLine(t, env, "# host:")
			},
		},
		{
			name:         "get reports commented state",
			args:         []string{"config", "get", "access_token_validity", "--format", "json"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				var output map[string]string
				harness.AssertValidJSON(t, result, &output)
				assert.Equal(t, "commented", output["state"])
				assert.Equal(t, "3600", output["value"])
			},
		},
		{
			name:         "get reports absent key",
			args:         []string{"config", "get", "nope", "--format", "json"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				var output map[string]string
				harness.AssertValidJSON(t, result, &output)
				assert.Equal(t, "absent", output["state"])
			},
		},
		{
			name:         "multi-line value is rejected",
			args:         []string{"config", "set", "host", "a\nb"},
			wantExitCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)
			harness.AssertSuccess(t, harness.RunCommand(t, env, "reset"))

			result := harness.RunCommand(t, env, tt.args...)

			if tt.wantExitCode == 0 {
				harness.AssertSuccess(t, result)
			} else {
				harness.AssertFailure(t, result)
			}

			if tt.validate != nil {
				tt.validate(t, env, result)
			}
		})
	}
}

func TestConfig_WithoutLiveConfigFails(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "config", "set", "port", "1")

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "config.yaml")
}
