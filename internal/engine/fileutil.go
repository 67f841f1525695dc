package engine

import "os"

// fileExists backs the `file_present`/`not_file_present` conditions.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
