package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envWithout(keys ...string) []string {
	var env []string
	for _, e := range os.Environ() {
		drop := false
		for _, key := range keys {
			if strings.HasPrefix(e, key+"=") {
				drop = true
				break
			}
		}
		if !drop {
			env = append(env, e)
		}
	}
	return env
}

func TestGenerateCommand_NoArgs(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "requires at least 1 arg")
}

func TestGenerateCommand_InvalidID(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate", "not-a-uuid")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid itinerary id")
}

func TestGenerateCommand_InvalidProvider(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate",
		"--provider", "bogus",
		"00000000-0000-0000-0000-000000000001")
	cmd.Env = append(envWithout("GENERATION_PROVIDER"), "DATABASE_URL=postgres://localhost/x")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "provider")
}

func TestGenerateCommand_MissingDatabaseURL(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate", "00000000-0000-0000-0000-000000000001")
	cmd.Env = envWithout("DATABASE_URL")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "DATABASE_URL environment variable is required")
}

func TestCreateCommand_MissingTitle(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "create")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "title")
}

func TestStatusCommand_InvalidID(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "status", "nope")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid itinerary id")
}
