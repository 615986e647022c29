package configparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/drone/envsubst"
	"github.com/subosito/gotenv"
	"go.yaml.in/yaml/v4"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadEnvFile loads variables from a dotenv file into the environment.
// Variables that are already set are kept. A missing file is not an error.
func LoadEnvFile(filepath string) error {
	if _, err := os.Stat(filepath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := gotenv.Load(filepath); err != nil {
		return fmt.Errorf("could not load env file: %w", err)
	}

	return nil
}

// LoadAndParseYaml reads a YAML file, expands ${VAR} and ${VAR:-default}
// references from the environment and decodes the result into dst.
func LoadAndParseYaml(filepath string, dst any) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	expanded, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return fmt.Errorf("could not expand environment variables: %w", err)
	}

	if err := yaml.Unmarshal([]byte(expanded), dst); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	return nil
}
