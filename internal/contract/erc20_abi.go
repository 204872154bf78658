package contract

// ERC20ReadABI is the read-only subset of the ERC-20 interface (EIP-20) the
// wallet view needs.
//
// Function selectors:
//
//	symbol()            → 0x95d89b41
//	decimals()          → 0x313ce567
//	balanceOf(address)  → 0x70a08231
var ERC20ReadABI = mustParseABI(erc20ReadABIJSON)

const erc20ReadABIJSON = `[
	{
		"name": "symbol",
		"type": "function",
		"inputs": [],
		"outputs": [{"name": "", "type": "string"}],
		"stateMutability": "view"
	},
	{
		"name": "decimals",
		"type": "function",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint8"}],
		"stateMutability": "view"
	},
	{
		"name": "balanceOf",
		"type": "function",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view"
	}
]`
