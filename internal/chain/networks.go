package chain

// knownNetwork is display metadata for a well-known EVM chain id. It only
// labels whatever network the wallet reports; nothing here selects a chain.
type knownNetwork struct {
	ChainID        int64
	DisplayName    string
	NativeCurrency string
}

var knownNetworks = map[int64]knownNetwork{}

func init() {
	for _, n := range []knownNetwork{
		{1, "Ethereum", "ETH"},
		{11155111, "Sepolia", "ETH"},
		{17000, "Holesky", "ETH"},
		{8453, "Base", "ETH"},
		{84532, "Base Sepolia", "ETH"},
		{137, "Polygon", "POL"},
		{80002, "Amoy", "POL"},
		{42161, "Arbitrum", "ETH"},
		{421614, "Arb Sepolia", "ETH"},
		{10, "Optimism", "ETH"},
		{11155420, "OP Sepolia", "ETH"},
		{56, "BNB Chain", "BNB"},
		{97, "BSC Testnet", "tBNB"},
		{43114, "Avalanche", "AVAX"},
		{43113, "Fuji", "AVAX"},
		{59144, "Linea", "ETH"},
		{324, "zkSync Era", "ETH"},
		{534352, "Scroll", "ETH"},
		{5000, "Mantle", "MNT"},
		{42220, "Celo", "CELO"},
		{100, "Gnosis", "xDAI"},
		{81457, "Blast", "ETH"},
		{1284, "Moonbeam", "GLMR"},
		{25, "Cronos", "CRO"},
		{31337, "Localhost", "ETH"},
		{1337, "Localhost", "ETH"},
	} {
		knownNetworks[n.ChainID] = n
	}
}

func lookupNetwork(chainID int64) (knownNetwork, bool) {
	n, ok := knownNetworks[chainID]
	return n, ok
}

// NetworkName returns a display name for chainID, or "" when unknown.
func NetworkName(chainID int64) string {
	n, _ := lookupNetwork(chainID)
	return n.DisplayName
}

// NativeSymbol returns the native currency symbol for chainID, defaulting to ETH.
func NativeSymbol(chainID int64) string {
	if n, ok := lookupNetwork(chainID); ok {
		return n.NativeCurrency
	}
	return "ETH"
}
