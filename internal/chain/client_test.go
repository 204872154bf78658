package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/Mohsinsiddi/w3connect/internal/provider"
	"github.com/Mohsinsiddi/w3connect/internal/provider/providertest"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccount = "0xabcd000000000000000000000000000000001234"

func oneAndHalfEther() *big.Int {
	v, _ := new(big.Int).SetString("1500000000000000000", 10)
	return v
}

// ---------------------------------------------------------------------------
// RequestAccounts
// ---------------------------------------------------------------------------

func TestRequestAccounts(t *testing.T) {
	c := NewClient(providertest.Wallet(testAccount, 1, oneAndHalfEther()))

	accounts, err := c.RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, common.HexToAddress(testAccount), accounts[0])
}

func TestRequestAccountsFallsBackToEthAccounts(t *testing.T) {
	fake := providertest.New().Respond("eth_accounts", []string{testAccount})
	c := NewClient(fake)

	accounts, err := c.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, []string{"eth_requestAccounts", "eth_accounts"}, fake.Calls())
}

func TestRequestAccountsUserRejected(t *testing.T) {
	fake := providertest.New().Fail("eth_requestAccounts", provider.CodeUserRejected, "User rejected the request.")
	c := NewClient(fake)

	_, err := c.RequestAccounts(context.Background())
	require.Error(t, err)
	assert.True(t, provider.IsUserRejected(err))
	assert.Equal(t, "User rejected the request.", err.Error())
	assert.Equal(t, 0, fake.CallCount("eth_accounts"), "rejection must not fall back")
}

func TestRequestAccountsEmpty(t *testing.T) {
	c := NewClient(providertest.New().Respond("eth_requestAccounts", []string{}))

	accounts, err := c.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestRequestAccountsInvalidAddress(t *testing.T) {
	c := NewClient(providertest.New().Respond("eth_requestAccounts", []string{"not-an-address"}))

	_, err := c.RequestAccounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid account address")
}

// ---------------------------------------------------------------------------
// GetNetwork / GetBalance
// ---------------------------------------------------------------------------

func TestGetNetwork(t *testing.T) {
	c := NewClient(providertest.Wallet(testAccount, 137, big.NewInt(0)))

	n, err := c.GetNetwork(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(137), n.ChainID)
	assert.Equal(t, "Polygon", n.Name)
}

func TestGetNetworkBadPayload(t *testing.T) {
	c := NewClient(providertest.New().Respond("eth_chainId", 12))

	_, err := c.GetNetwork(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse chain id")
}

func TestGetBalance(t *testing.T) {
	c := NewClient(providertest.Wallet(testAccount, 1, oneAndHalfEther()))

	wei, err := c.GetBalance(context.Background(), common.HexToAddress(testAccount))
	require.NoError(t, err)
	assert.Equal(t, oneAndHalfEther(), wei)
}

func TestGetBalanceRPCError(t *testing.T) {
	c := NewClient(providertest.New().Fail("eth_getBalance", -32000, "header not found"))

	_, err := c.GetBalance(context.Background(), common.HexToAddress(testAccount))
	require.Error(t, err)
	assert.Equal(t, "header not found", err.Error())
}

// ---------------------------------------------------------------------------
// GetSigner
// ---------------------------------------------------------------------------

func TestGetSigner(t *testing.T) {
	fake := providertest.Wallet(testAccount, 1, big.NewInt(0))
	c := NewClient(fake)

	s, err := c.GetSigner(context.Background(), common.HexToAddress(testAccount))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAccount), s.Address())
	assert.Same(t, fake, s.Provider())
}

func TestGetSignerUnknownAccount(t *testing.T) {
	c := NewClient(providertest.Wallet(testAccount, 1, big.NewInt(0)))

	_, err := c.GetSigner(context.Background(), common.HexToAddress("0x0000000000000000000000000000000000000001"))
	assert.ErrorIs(t, err, ErrAccountUnavailable)
}

func TestGetSignerWithoutAccountListing(t *testing.T) {
	c := NewClient(providertest.New())

	s, err := c.GetSigner(context.Background(), common.HexToAddress(testAccount))
	require.NoError(t, err)
	assert.NotNil(t, s)
}

// ---------------------------------------------------------------------------
// CallContract / ParseChainID
// ---------------------------------------------------------------------------

func TestCallContract(t *testing.T) {
	token := "0x1111111111111111111111111111111111111111"
	c := NewClient(providertest.New().WithToken(token, "USDC", 6, big.NewInt(0)))

	out, err := c.CallContract(context.Background(), token, providertest.SelectorDecimals)
	require.NoError(t, err)
	assert.Equal(t, providertest.EncodeUint(big.NewInt(6)), out)
}

func TestParseChainID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0x1", 1, false},
		{"0x89", 137, false},
		{"0X2105", 8453, false},
		{"1", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChainID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
