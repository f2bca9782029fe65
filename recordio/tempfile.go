package recordio

import "os"

// CreateEmptyTempFile creates an empty file in the system temp directory
// and returns its path. The caller removes it.
func CreateEmptyTempFile(prefix, suffix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"*"+suffix)
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return f.Name(), nil
}

// MkTmpDir creates a new directory in the system temp directory and
// returns its path. The caller removes it.
func MkTmpDir() (string, error) {
	return os.MkdirTemp("", "copious-")
}
