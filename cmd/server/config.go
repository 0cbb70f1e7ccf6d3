package main

import "errors"

const (
	storeDriverPostgres = "postgres"
	storeDriverMemory   = "memory"
)

type appConfig struct {
	Env                string `env:"APP_ENV" envDefault:"development"`
	Name               string `env:"APP_NAME" envDefault:"newsletter"`
	BaseURL            string `env:"APP_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	StoreDriver        string `env:"STORE_DRIVER" envDefault:"postgres"`
	PublishConcurrency int    `env:"PUBLISH_CONCURRENCY" envDefault:"1"`
}

var errUnknownStoreDriver = errors.New("unknown store driver")
