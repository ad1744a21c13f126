// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

//go:build e2e

package helpers

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// BuildServer compiles the binary into a temp directory.
// Returns a callback to delete the temporary directory when it is no longer needed.
func BuildServer() (string, func(), error) {
	buildDir, err := os.MkdirTemp(os.TempDir(), "graphsemantics-test-*")
	if err != nil {
		return "", nil, err
	}

	cleanup := func() {
		if err := os.RemoveAll(buildDir); err != nil {
			log.Printf("failed to cleanup build directory: %v", err)
		}
	}

	binaryPath := filepath.Join(buildDir, "graphsemantics")

	// project root is two levels up from test/e2e/
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = filepath.Join("..", "..", "cmd", "graphsemantics")
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		log.Printf("Build output: %s", string(output))
		return "", nil, err
	}
	log.Printf("Built server binary at: %s", binaryPath)

	if _, err := os.Stat(binaryPath); err != nil {
		cleanup()
		return "", nil, err
	}

	return binaryPath, cleanup, nil
}
