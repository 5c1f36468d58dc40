// Package harness provides utilities for integration testing the coretest CLI.
// It handles binary compilation, environment isolation, fixture install dirs
// and command execution.
//
// Environment variables managed:
//   - CORETEST_HOME: Isolated per test (temp directory holding the registry)
//   - CORETEST_INSTALL_DIR: Isolated per test (fixture install dir)
//   - CORETEST_DEBUG: Disabled to reduce noise
package harness
