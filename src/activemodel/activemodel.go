// Package activemodel reads the model name a backend currently has active
// from its own config file. The file is a foreign, line-oriented shell-style
// config; the only key of interest is MODEL_NAME. The value is used purely to
// annotate the matching discovered record, never to influence discovery or
// switching.
package activemodel

import (
	"bufio"
	"os"
	"strings"
)

// Read returns the MODEL_NAME value from the file at path, or "" when the
// file is absent or carries no such assignment. Absence is not an error.
func Read(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != "MODEL_NAME" {
			continue
		}
		val = strings.TrimSpace(val)
		val = strings.Trim(val, `"'`)
		return val, nil
	}
	return "", sc.Err()
}
