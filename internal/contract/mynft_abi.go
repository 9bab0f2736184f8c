package contract

// MyNFTID is the builtin key of the mint contract.
const MyNFTID = "mynft"

func init() {
	MustRegisterBuiltin(BuiltinKind{
		ID:          MyNFTID,
		Name:        "MyNFT (ERC-721 with capped public mint)",
		Description: "Enumerable ERC-721 with a per-address public mint limit and owner-reserved tokens",
		JSON:        myNFTABIJSON,
	})
}

const myNFTABIJSON = `[
  {"type":"constructor","inputs":[],"stateMutability":"nonpayable"},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"indexed":true,"name":"from","type":"address"},
    {"indexed":true,"name":"to","type":"address"},
    {"indexed":true,"name":"tokenId","type":"uint256"}]},
  {"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"symbol","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"balanceOf","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"ownerOf","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
  {"type":"function","name":"tokenURI","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
  {"type":"function","name":"mintPublic","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
  {"type":"function","name":"mintReserved","inputs":[{"name":"numReservedTokens","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
  {"type":"function","name":"setTmpMaxPublic","inputs":[{"name":"newTmpMax","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}
]`
