package ui

import (
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/w3connect/internal/chain"
	"github.com/Mohsinsiddi/w3connect/internal/provider"
	"github.com/Mohsinsiddi/w3connect/internal/session"
)

// ShortAddress shortens an address for display: first 6 + "..." + last 4.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// IsWrongNetwork reports whether chainID differs from the expected network.
// An unset chain id is never wrong.
func IsWrongNetwork(chainID int64) bool {
	return chainID != 0 && chainID != session.ExpectedChainID
}

// Render maps a session snapshot to its presentation.
func Render(s session.State) string {
	return render(s, spinnerFrame(0))
}

func render(s session.State, spin string) string {
	var sb strings.Builder
	sb.WriteString(Title())

	switch {
	case session.ProviderMissing(s):
		sb.WriteString(Err("No wallet provider found") + "\n")
		if detail := strings.TrimPrefix(s.Error, provider.ErrNoProvider.Error()+": "); detail != s.Error {
			sb.WriteString(Meta("  "+detail) + "\n")
		}
		sb.WriteString(Hint(fmt.Sprintf("set %s or pass --provider, then restart", provider.EnvProviderURL)) + "\n")

	case s.Status == session.StatusDisconnected:
		sb.WriteString(Meta("No wallet connected.") + "\n\n")
		sb.WriteString(Key("c", "connect wallet") + "\n")

	case s.Status == session.StatusConnecting:
		sb.WriteString(StyleInfo.Render(spin+" Connecting wallet…") + "\n")
		if s.Address != "" {
			sb.WriteString(Meta("  last account: "+ShortAddress(s.Address)) + "\n")
		}

	case s.Status == session.StatusConnected:
		sb.WriteString(Success("Wallet connected") + "\n\n")
		sb.WriteString(details(s) + "\n")
		sb.WriteString(Key("r", "refresh") + "  " + Key("d", "disconnect") + "\n")

	default:
		sb.WriteString(StyleErrorBorder.Render(Err(errorText(s.Error))) + "\n")
		if s.Address != "" {
			sb.WriteString(Meta("  last account: "+ShortAddress(s.Address)) + "\n")
		}
		sb.WriteString("\n" + Key("c", "retry") + "\n")
	}

	return sb.String()
}

func details(s session.State) string {
	chainLabel := fmt.Sprintf("%d", s.ChainID)
	if name := chain.NetworkName(s.ChainID); name != "" {
		chainLabel += " (" + name + ")"
	}

	var sb strings.Builder
	sb.WriteString(KeyValueBlock("Account", [][2]string{
		{"Address", ShortAddress(s.Address)},
		{"Balance", s.NativeBalance + " " + chain.NativeSymbol(s.ChainID)},
		{"Chain ID", chainLabel},
	}))
	sb.WriteString("\n")

	if IsWrongNetwork(s.ChainID) {
		want := chain.NetworkName(session.ExpectedChainID)
		sb.WriteString(Warn(fmt.Sprintf("Wrong network: switch your wallet to %s (chain %d)", want, session.ExpectedChainID)))
		sb.WriteString("\n")
	}

	if s.HasToken() {
		sb.WriteString(KeyValueBlock("Token", [][2]string{
			{"Symbol", s.TokenSymbol},
			{"Balance", s.TokenBalance + " " + s.TokenSymbol},
		}))
		sb.WriteString("\n")
	}
	return sb.String()
}

func errorText(msg string) string {
	if msg == "" {
		return "failed to connect wallet"
	}
	return msg
}
