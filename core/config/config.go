package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "session_logs"
	PrivateKeyName    = "private_key"
	AppLogName        = "app.log"
)

type Configuration struct {
	configFs afero.Fs

	// Name and Version are shown in the banner after login.
	Name     string `json:"name" validate:"required"`
	Version  string `json:"version" validate:"required"`
	Hostname string `json:"hostname" validate:"required,hostname_rfc1123"`
	Motd     string `json:"motd"`

	SSHPort          int  `json:"ssh_port" validate:"gte=0,lte=65535"`
	AllowAnyPassword bool `json:"allow_any_password"`

	Users []User `json:"users" validate:"unique=Username,dive"`

	// RecordSessions saves an asciicast recording of every session.
	RecordSessions bool `json:"record_sessions"`
	// OutputBytesPerSecond throttles SSH output, 0 disables the limit.
	OutputBytesPerSecond int64 `json:"output_bytes_per_second" validate:"gte=0"`

	StaticCommands []StaticCommand `json:"static_commands" validate:"unique=Name,dive"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

type User struct {
	Username  string   `json:"username" validate:"required"`
	Passwords []string `json:"passwords" validate:"unique"`
}

// StaticCommand is a command that always prints the same output.
type StaticCommand struct {
	// Name can't contain operator characters or it could never be invoked.
	Name     string `json:"name" validate:"required,excludesall=0x7C;&"`
	Stdout   string `json:"stdout"`
	ExitCode int    `json:"exit_code" validate:"gte=0,lte=255"`
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// CreateSessionLog creates a file in the session log directory.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	toCreate := filepath.Join(LogsDirName, name)
	return c.fs().Create(toCreate)
}

// PrivateKeyPem returns the bytes of the private key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), PrivateKeyName)
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// GetPasswords returns allowable passwords for the given username.
func (c *Configuration) GetPasswords(username string) []string {
	var out []string
	for _, v := range c.Users {
		if v.Username == username {
			out = append(out, v.Passwords...)
		}
	}

	return out
}

// CheckPassword reports whether the user may log in with password.
func (c *Configuration) CheckPassword(username, password string) bool {
	if c.AllowAnyPassword {
		return true
	}

	for _, p := range c.GetPasswords(username) {
		if p == password {
			return true
		}
	}
	return false
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
