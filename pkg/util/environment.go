package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "FINDMYBUS_"

// GetEnvironmentVariables returns every FINDMYBUS_ variable keyed by its full name
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], EnvironmentPrefix) {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}
