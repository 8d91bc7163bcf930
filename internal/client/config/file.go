package config

import (
	"github.com/dmitrijs2005/lightway/internal/filex"
	"github.com/dmitrijs2005/lightway/internal/flagx"
	"github.com/dmitrijs2005/lightway/internal/timex"
)

// FileConfig is a DTO used exclusively for config file decoding.
type FileConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LedgerPath          *string         `json:"ledger_path" yaml:"ledger_path"`
}

func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	var fc FileConfig
	if err := filex.DecodeConfigFile(path, &fc); err != nil {
		return err
	}

	if fc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *fc.ServerEndpointAddr
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LedgerPath != nil {
		cfg.LedgerPath = *fc.LedgerPath
	}
	return nil
}
