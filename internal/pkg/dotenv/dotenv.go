package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// ErrNoEnvFile - файла нет, конфиг берется только из окружения.
var ErrNoEnvFile = errors.New("env file not found")

// Load разбирает флаги -env-file и -port, подгружает env-файл и
// переопределяет PORT значением флага. Уже заданные переменные окружения
// имеют приоритет над файлом.
func Load(name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	envFile := fs.String("env-file", defaultEnvFile, "path to env file")
	port := fs.String("port", "", "server port (overrides PORT environment variable)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	var loadErr error
	if _, err := os.Stat(*envFile); err != nil {
		loadErr = fmt.Errorf("%w: %s", ErrNoEnvFile, *envFile)
	} else if err := godotenv.Load(*envFile); err != nil {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}

	if *port != "" {
		if err := os.Setenv("PORT", *port); err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return loadErr
}
