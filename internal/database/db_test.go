package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := Config{User: "booking", Pass: "s3cret", Host: "db", Port: "3306", Name: "stand_booking"}
	assert.Equal(t,
		"booking:s3cret@tcp(db:3306)/stand_booking?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := Config{User: "booking", Host: "localhost", Port: "3307", Name: "stand_booking"}
	assert.Equal(t,
		"booking@tcp(localhost:3307)/stand_booking?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}
