package config

import "time"

// Config holds all w3mint configuration.
type Config struct {
	RPCURL           string        `json:"rpc_url"            mapstructure:"rpc_url"`
	ContractAddress  string        `json:"contract_address"   mapstructure:"contract_address"`
	ExpectedChainID  string        `json:"expected_chain_id"  mapstructure:"expected_chain_id"`
	NetworkLabel     string        `json:"network_label"      mapstructure:"network_label"` // overrides the registry name
	WalletTag        string        `json:"wallet_tag"         mapstructure:"wallet_tag"`
	DefaultWallet    string        `json:"default_wallet"     mapstructure:"default_wallet"`
	AdminAddresses   []string      `json:"admin_addresses"    mapstructure:"admin_addresses"`
	MaxSupplyDisplay int           `json:"max_supply_display" mapstructure:"max_supply_display"`
	PollInterval     time.Duration `json:"poll_interval"      mapstructure:"poll_interval"`
	RPCTimeout       time.Duration `json:"rpc_timeout"        mapstructure:"rpc_timeout"`
	ConnectTimeout   time.Duration `json:"connect_timeout"    mapstructure:"connect_timeout"`
	MintTimeout      time.Duration `json:"mint_timeout"       mapstructure:"mint_timeout"`
	WaitMined        bool          `json:"wait_mined"         mapstructure:"wait_mined"`

	// internal: config dir path used for Save()
	configDir string
}
