// Package config loads server configuration from the environment so main
// stays lean.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	id "penledger/pkg/domain"
)

// Server captures process-level configuration.
//
// The contract owner is fixed at deployment: it is the only identity allowed
// to manage role registrations, and it never changes except through an
// explicit ownership transfer by the owner itself.
type Server struct {
	Addr    string `env:"PENLEDGER_ADDR" envDefault:":8080"`
	OwnerID string `env:"PENLEDGER_OWNER_ID,required"`

	// EligibilityYears is the minimum years worked before a pensioner
	// qualifies for payout initiation.
	EligibilityYears uint32 `env:"PENLEDGER_ELIGIBILITY_YEARS" envDefault:"10"`
}

// FromEnv parses configuration from environment variables.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env config: %w", err)
	}
	if _, err := id.ParseAccountID(cfg.OwnerID); err != nil {
		return Server{}, fmt.Errorf("PENLEDGER_OWNER_ID: %w", err)
	}
	return cfg, nil
}

// Owner returns the parsed owner account id. FromEnv has already validated
// it, so the zero value is never returned from a FromEnv-built config.
func (s Server) Owner() id.AccountID {
	owner, _ := id.ParseAccountID(s.OwnerID)
	return owner
}
