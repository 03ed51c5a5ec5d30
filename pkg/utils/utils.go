package utils

import "os"

func GetDefaultOutputDir() string {
	tmpDir, err := os.MkdirTemp("", "pagemill-pages-*")
	if err != nil {
		// If we can't create a temp directory, fall back to local directory
		return "pagemill-pages"
	}
	return tmpDir
}
