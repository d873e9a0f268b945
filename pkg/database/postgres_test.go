package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", User: "u", Password: "p", Name: "wh", Port: "5433"}

	assert.True(t, cfg.Configured())
	assert.Equal(t, "host=db user=u password=p dbname=wh port=5433 sslmode=disable", cfg.dsn())

	cfg.DSN = "postgres://u:p@db/wh"
	assert.Equal(t, "postgres://u:p@db/wh", cfg.dsn())

	assert.False(t, Config{Port: "5432"}.Configured())
}
