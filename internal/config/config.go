package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string

	JWTSecret      string
	JWTExpireHours int

	BcryptCost int
	Workers    int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		HTTPPort:         "9446",
		JWTExpireHours:   8,
		BcryptCost:       10,
		Workers:          4,
	}

	if v := os.Getenv("POSTGRES_ADDRESS"); len(v) != 0 {
		env.PostgresAddress = v
	}
	if v := os.Getenv("POSTGRES_PORT"); len(v) != 0 {
		env.PostgresPort = v
	}
	if v := os.Getenv("POSTGRES_DB"); len(v) != 0 {
		env.PostgresDB = v
	}
	if v := os.Getenv("POSTGRES_USERNAME"); len(v) != 0 {
		env.PostgresUsername = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); len(v) != 0 {
		env.PostgresPassword = v
	}
	if v := os.Getenv("HTTP_PORT"); len(v) != 0 {
		env.HTTPPort = v
	}

	env.JWTSecret = os.Getenv("JWT_SECRET")
	if len(env.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	if v := os.Getenv("JWT_EXPIRE_HOURS"); len(v) != 0 {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("JWT_EXPIRE_HOURS: %w", err)
		}
		env.JWTExpireHours = hours
	}
	if v := os.Getenv("BCRYPT_COST"); len(v) != 0 {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("BCRYPT_COST: %w", err)
		}
		env.BcryptCost = cost
	}
	if v := os.Getenv("WORKERS"); len(v) != 0 {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("WORKERS: %w", err)
		}
		env.Workers = workers
	}

	return &env, nil
}
