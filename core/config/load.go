package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

// LoadFs loads and validates the configuration from the root of configFs.
func LoadFs(configFs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}

	out.configFs = configFs
	return &out, nil
}

// Initialize creates a configuration directory at path, existing files are
// left untouched.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}

	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), path), logger)
}

// InitializeFs creates the configuration, host key and log directory in
// configFs then loads the result.
func InitializeFs(configFs afero.Fs, logger *log.Logger) (*Configuration, error) {
	logger.Printf("Writing %s\n", ConfigurationName)
	if err := writeIfMissing(configFs, ConfigurationName, logger, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return nil, err
	}

	logger.Printf("Generating %s\n", PrivateKeyName)
	if err := writeIfMissing(configFs, PrivateKeyName, logger, generatePrivateKeyPem); err != nil {
		return nil, err
	}

	logger.Printf("Creating %s/\n", LogsDirName)
	if err := configFs.MkdirAll(LogsDirName, 0700); err != nil {
		return nil, err
	}

	return LoadFs(configFs)
}

func writeIfMissing(configFs afero.Fs, name string, logger *log.Logger, contents func() ([]byte, error)) error {
	_, err := configFs.Stat(name)
	switch {
	case err == nil:
		logger.Printf("- %s already exists, skipping\n", name)
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	data, err := contents()
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	return afero.WriteFile(configFs, name, data, 0600)
}

func generatePrivateKeyPem() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), nil
}
