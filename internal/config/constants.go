package config

import "time"

// Deployment constants of the NFT contract this client mints from. They are
// the defaults; every one can be overridden in config.json or the environment.
const (
	DefaultContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	DefaultExpectedChainID = "0x539" // Localhost 8545
	DefaultRPCURL          = "http://localhost:8545"
	DefaultWalletTag       = "w3cli" // type tag the local wallet provider reports
	MaxSupplyDisplay       = 50      // denominator of the "minted/50" counter
)

// DefaultAdminAddresses is the owner allow-list of the deployment.
var DefaultAdminAddresses = []string{
	"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
}

// Timeouts applied to every outstanding provider / contract call.
const (
	RPCTimeout     = 15 * time.Second // reads: eth_chainId, eth_accounts, totalSupply
	ConnectTimeout = 2 * time.Minute  // eth_requestAccounts waits for the user
	MintTimeout    = 3 * time.Minute  // mintPublic send (+ receipt when wait_mined)
	PollInterval   = 2 * time.Second  // provider chain / connectivity monitor
)
