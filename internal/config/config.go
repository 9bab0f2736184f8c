package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	configFile  = "config.json"
	walletsFile = "wallets.json"
	logFile     = "w3mint.log"

	envPrefix = "W3MINT"
)

// ErrUnknownKey is returned by Set for a key that is not a config option.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists every configurable key in display order.
var Keys = []string{
	"rpc_url",
	"contract_address",
	"expected_chain_id",
	"network_label",
	"wallet_tag",
	"default_wallet",
	"admin_addresses",
	"max_supply_display",
	"poll_interval",
	"rpc_timeout",
	"connect_timeout",
	"mint_timeout",
	"wait_mined",
}

// Load reads config from dir (or creates defaults). dir defaults to ~/.w3mint.
// Values resolve as defaults < config.json < W3MINT_* environment variables.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".w3mint")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	v := newViper()
	path := filepath.Join(dir, configFile)
	v.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.configDir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigType("json")
	v.Set("rpc_url", c.RPCURL)
	v.Set("contract_address", c.ContractAddress)
	v.Set("expected_chain_id", c.ExpectedChainID)
	v.Set("network_label", c.NetworkLabel)
	v.Set("wallet_tag", c.WalletTag)
	v.Set("default_wallet", c.DefaultWallet)
	v.Set("admin_addresses", c.AdminAddresses)
	v.Set("max_supply_display", c.MaxSupplyDisplay)
	v.Set("poll_interval", c.PollInterval.String())
	v.Set("rpc_timeout", c.RPCTimeout.String())
	v.Set("connect_timeout", c.ConnectTimeout.String())
	v.Set("mint_timeout", c.MintTimeout.String())
	v.Set("wait_mined", c.WaitMined)

	path := filepath.Join(c.configDir, configFile)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// Validate checks the values the controller cannot run without.
func (c *Config) Validate() error {
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("invalid contract_address %q", c.ContractAddress)
	}
	if _, err := chain.ParseID(c.ExpectedChainID); err != nil {
		return fmt.Errorf("invalid expected_chain_id: %w", err)
	}
	for _, a := range c.AdminAddresses {
		if !common.IsHexAddress(a) {
			return fmt.Errorf("invalid admin address %q", a)
		}
	}
	if c.MaxSupplyDisplay <= 0 {
		return fmt.Errorf("max_supply_display must be positive, got %d", c.MaxSupplyDisplay)
	}
	return nil
}

// Set assigns a single key from its string form, as typed on the command line.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "rpc_url":
		c.RPCURL = value
	case "contract_address":
		if !common.IsHexAddress(value) {
			return fmt.Errorf("invalid address %q", value)
		}
		c.ContractAddress = common.HexToAddress(value).Hex()
	case "expected_chain_id":
		var id chain.ID
		if id, err = chain.ParseID(value); err != nil {
			return err
		}
		c.ExpectedChainID = id.String()
	case "network_label":
		c.NetworkLabel = value
	case "wallet_tag":
		c.WalletTag = value
	case "default_wallet":
		c.DefaultWallet = value
	case "admin_addresses":
		var addrs []string
		for _, a := range strings.Split(value, ",") {
			if a = strings.TrimSpace(a); a == "" {
				continue
			}
			if !common.IsHexAddress(a) {
				return fmt.Errorf("invalid admin address %q", a)
			}
			addrs = append(addrs, common.HexToAddress(a).Hex())
		}
		c.AdminAddresses = addrs
	case "max_supply_display":
		var n int
		if n, err = strconv.Atoi(value); err != nil || n <= 0 {
			return fmt.Errorf("max_supply_display must be a positive integer, got %q", value)
		}
		c.MaxSupplyDisplay = n
	case "poll_interval":
		c.PollInterval, err = time.ParseDuration(value)
	case "rpc_timeout":
		c.RPCTimeout, err = time.ParseDuration(value)
	case "connect_timeout":
		c.ConnectTimeout, err = time.ParseDuration(value)
	case "mint_timeout":
		c.MintTimeout, err = time.ParseDuration(value)
	case "wait_mined":
		c.WaitMined, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// Get returns the string form of a key, as shown by `config show`.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "rpc_url":
		return c.RPCURL, nil
	case "contract_address":
		return c.ContractAddress, nil
	case "expected_chain_id":
		return c.ExpectedChainID, nil
	case "network_label":
		return c.NetworkLabel, nil
	case "wallet_tag":
		return c.WalletTag, nil
	case "default_wallet":
		return c.DefaultWallet, nil
	case "admin_addresses":
		return strings.Join(c.AdminAddresses, ","), nil
	case "max_supply_display":
		return strconv.Itoa(c.MaxSupplyDisplay), nil
	case "poll_interval":
		return c.PollInterval.String(), nil
	case "rpc_timeout":
		return c.RPCTimeout.String(), nil
	case "connect_timeout":
		return c.ConnectTimeout.String(), nil
	case "mint_timeout":
		return c.MintTimeout.String(), nil
	case "wait_mined":
		return strconv.FormatBool(c.WaitMined), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// ChainID returns the expected chain id in canonical form.
func (c *Config) ChainID() chain.ID {
	id, err := chain.ParseID(c.ExpectedChainID)
	if err != nil {
		return ""
	}
	return id
}

// IsAdmin reports whether addr is on the admin allow-list.
func (c *Config) IsAdmin(addr string) bool {
	return slices.ContainsFunc(c.AdminAddresses, func(a string) bool {
		return strings.EqualFold(a, addr)
	})
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of wallets.json.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// LogPath returns the path of the log file the TUI writes to.
func (c *Config) LogPath() string {
	return filepath.Join(c.configDir, logFile)
}

// --- helpers ---

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("rpc_url", DefaultRPCURL)
	v.SetDefault("contract_address", DefaultContractAddress)
	v.SetDefault("expected_chain_id", DefaultExpectedChainID)
	v.SetDefault("network_label", "")
	v.SetDefault("wallet_tag", DefaultWalletTag)
	v.SetDefault("default_wallet", "")
	v.SetDefault("admin_addresses", slices.Clone(DefaultAdminAddresses))
	v.SetDefault("max_supply_display", MaxSupplyDisplay)
	v.SetDefault("poll_interval", PollInterval)
	v.SetDefault("rpc_timeout", RPCTimeout)
	v.SetDefault("connect_timeout", ConnectTimeout)
	v.SetDefault("mint_timeout", MintTimeout)
	v.SetDefault("wait_mined", false)

	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}
