package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// dirCheckResult is the result of a config-directory writability probe.
type dirCheckResult struct {
	exists   bool
	writable bool
	err      error
}

// fileExists reports whether a config file exists at path.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureDir creates the config directory if it doesn't exist.
func ensureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// saveTOMLFile encodes a Config to a TOML file.
func saveTOMLFile(data interface{}, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(data)
}

// getAbsolutePath resolves a config path to an absolute one for display in
// GetActiveConfigPath, falling back to the given value if resolution fails.
func getAbsolutePath(configPath string) string {
	if configPath == "" {
		return "unknown"
	}
	if !filepath.IsAbs(configPath) {
		if absPath, err := filepath.Abs(configPath); err == nil {
			return absPath
		}
	}
	return configPath
}

// testWriteAccess probes whether dirPath can be written to.
func testWriteAccess(dirPath string) bool {
	testFile := filepath.Join(dirPath, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	file.Close()
	os.Remove(testFile)
	return true
}

// getExecutableDir is the fallback config location when the home directory
// can't be determined or ~/.config isn't writable.
func getExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// checkDirStatus tests whether dirPath exists (creating it if needed) and is
// writable, used while walking GetConfigDir's fallback chain.
func checkDirStatus(dirPath string) dirCheckResult {
	result := dirCheckResult{}
	if _, err := os.Stat(dirPath); err == nil {
		result.exists = true
		result.writable = testWriteAccess(dirPath)
		return result
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		result.err = err
		log.Warnf("Cannot create directory %s: %v", dirPath, err)
		return result
	}
	result.exists = true
	result.writable = testWriteAccess(dirPath)
	return result
}
