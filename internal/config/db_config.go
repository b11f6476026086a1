package config

import (
	"errors"
	"fmt"
)

// DBConfig holds the configuration parameters for connecting to a database.
type DBConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	User             string `mapstructure:"user"`
	Password         string `mapstructure:"password"`
	Name             string `mapstructure:"name"`
	UseConnectionStr bool   `mapstructure:"use_connection_str"`
	ConnectionStr    string `mapstructure:"connection_str"`
}

// DSN returns the connection string for the configured database
func (c DBConfig) DSN() string {
	if c.UseConnectionStr {
		return c.ConnectionStr
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.Name)
}

func (c DBConfig) validate() error {
	if c.UseConnectionStr {
		if c.ConnectionStr == "" {
			return fmt.Errorf("missing variable: DB_CONNECTION_STR")
		}
		return nil
	}

	var errs []error
	for env, val := range map[string]string{
		"DB_HOST":     c.Host,
		"DB_PORT":     c.Port,
		"DB_USERNAME": c.User,
		"DB_PASSWORD": c.Password,
		"DB_DATABASE": c.Name,
	} {
		if val == "" {
			errs = append(errs, fmt.Errorf("missing variable: %s", env))
		}
	}
	return errors.Join(errs...)
}
