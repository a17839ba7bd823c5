package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const defaultEndpointFormat = "https://%s.pushnotifications.pusher.com"

// MaxInstanceIDLength is the longest DNS label.
const MaxInstanceIDLength = 63

// The instance id becomes a host label of the default endpoint.
var instanceIDPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)

// Config is the shape of a client configuration as seen by the validator.
type Config struct {
	InstanceID string
	SecretKey  string
	Endpoint   string
}

// DefaultEndpoint returns the service endpoint for an instance.
func DefaultEndpoint(instanceID string) string {
	return fmt.Sprintf(defaultEndpointFormat, instanceID)
}

// ClientConfig checks cfg and returns a copy with the endpoint resolved.
// An empty Endpoint means "not supplied" and is defaulted from the instance id.
func ClientConfig(cfg Config) (Config, error) {
	if err := requiredString("instanceId", cfg.InstanceID); err != nil {
		return Config{}, err
	}
	if err := instanceID(cfg.InstanceID); err != nil {
		return Config{}, err
	}
	if err := requiredString("secretKey", cfg.SecretKey); err != nil {
		return Config{}, err
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint(cfg.InstanceID)
		return cfg, nil
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return Config{}, &Error{Kind: EmptyString, Field: "endpoint", Index: -1}
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, &Error{
			Kind:     WrongType,
			Field:    "endpoint",
			Value:    cfg.Endpoint,
			Index:    -1,
			Expected: "an absolute http(s) URL",
		}
	}
	return cfg, nil
}

func requiredString(field, value string) error {
	if value == "" {
		return &Error{Kind: MissingField, Field: field, Index: -1}
	}
	if strings.TrimSpace(value) == "" {
		return &Error{Kind: EmptyString, Field: field, Index: -1}
	}
	return nil
}

func instanceID(id string) error {
	if len(id) > MaxInstanceIDLength {
		return &Error{Kind: TooLong, Field: "instanceId", Value: id, Index: -1, Limit: MaxInstanceIDLength}
	}
	if !instanceIDPattern.MatchString(id) {
		return &Error{
			Kind:     ForbiddenCharacter,
			Field:    "instanceId",
			Value:    id,
			Index:    -1,
			Expected: "ASCII letters, numbers or '-', not at either end",
		}
	}
	return nil
}
