// Package testutil holds the fixtures shared by the package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/user"
)

// Config returns a TEST mode configuration with the values the API needs.
func Config() *core.Config {
	conf := &core.Config{
		TestMode:        true,
		AppName:         "LifeTrack",
		Env:             "TEST",
		Build:           "test",
		SecretKey:       "test-secret-key",
		FrontendBaseURL: "http://localhost:8000",
		Server: core.ServerConfig{
			Host:               "localhost",
			Addr:               ":0",
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
			MaxUploadSize:      5 << 20,
		},
		Database: core.DatabaseConfig{Engine: "inmem"},
		Media:    core.MediaConfig{Backend: "local", BaseURL: "http://media.test"},
	}
	conf.SetDefaultFromEmail("LifeTrack <noreply@lifetrack.test>")
	return conf
}

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd string, isActive bool, createdAt ...time.Time) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Email:       email,
		DisplayName: name,
		IsActive:    isActive,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
