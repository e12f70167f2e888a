package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
	"github.com/fivetwenty-io/fic-client/pkg/ficclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = 2

	Masked = "***"
)

// ErrCredentialsNotConfigured is returned when a command needs the API but
// no credentials were resolved from flags, environment or the config file.
var ErrCredentialsNotConfigured = errors.New("API credentials are not configured, run 'fic config set-credentials' first")

// CreateClient builds an API client from the resolved configuration.
func CreateClient() (fic.Client, error) {
	uid := viper.GetString("api-uid")
	key := viper.GetString("api-key")

	if uid == "" || key == "" {
		return nil, ErrCredentialsNotConfigured
	}

	client, err := ficclient.New(&fic.Config{
		APIUID:      uid,
		APIKey:      key,
		APIEndpoint: viper.GetString("endpoint"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// StandardJSONRenderer creates a standard JSON encoder.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer creates a standard YAML encoder.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// moneyOrNA renders a server-computed amount, or N/A before the entity has
// been read back.
func moneyOrNA(money *fic.PreciseMoney) string {
	if money == nil {
		return NotAvailable
	}

	return money.MajorUnits() + " " + money.Currency().Code()
}

// dateOrNA renders a wire date, or N/A for the zero time.
func dateOrNA(value any) string {
	formatted, ok := value.(string)
	if !ok {
		return NotAvailable
	}

	return formatted
}
