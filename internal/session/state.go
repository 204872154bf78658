package session

// Status is the connection status of the wallet session.
type Status int

const (
	// StatusDisconnected means no account is connected.
	StatusDisconnected Status = iota

	// StatusConnecting means a connect attempt is in flight.
	StatusConnecting

	// StatusConnected means the last connect attempt succeeded.
	StatusConnected

	// StatusError means the provider is missing or the last attempt failed.
	StatusError
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the wallet session. Empty strings and a
// zero ChainID mean "not set".
//
// After a failed attempt the previous Address, ChainID and balances are kept
// as they were; only Status and Error change. A failed token read is the
// exception: see TokenFailed.
type State struct {
	Address       string
	ChainID       int64
	NativeBalance string
	TokenSymbol   string
	TokenBalance  string
	Status        Status
	Error         string
}

// Result is the data gathered by one successful connect attempt.
type Result struct {
	Address       string
	ChainID       int64
	NativeBalance string
	TokenSymbol   string
	TokenBalance  string
}

// Transform derives a new snapshot from the previous one.
type Transform func(State) State

// Initial returns the startup state: disconnected with every field cleared.
func Initial() State {
	return State{Status: StatusDisconnected}
}

// HasToken reports whether the optional token read is part of the snapshot.
func (s State) HasToken() bool { return s.TokenSymbol != "" }

// Reset discards everything and returns to Initial.
func Reset(State) State { return Initial() }

// Connecting marks an attempt as started and clears the previous error.
func Connecting(prev State) State {
	prev.Status = StatusConnecting
	prev.Error = ""
	return prev
}

// Connected replaces the whole snapshot with r.
func Connected(r Result) Transform {
	return func(State) State {
		return State{
			Address:       r.Address,
			ChainID:       r.ChainID,
			NativeBalance: r.NativeBalance,
			TokenSymbol:   r.TokenSymbol,
			TokenBalance:  r.TokenBalance,
			Status:        StatusConnected,
		}
	}
}

// TokenFailed records a failure of the token read. The account, chain and
// native balance already read in the same attempt are written and the token
// fields are cleared, so no field describes a different account or chain.
func TokenFailed(r Result, msg string) Transform {
	return func(prev State) State {
		prev.Address = r.Address
		prev.ChainID = r.ChainID
		prev.NativeBalance = r.NativeBalance
		prev.TokenSymbol = ""
		prev.TokenBalance = ""
		prev.Status = StatusError
		prev.Error = msg
		return prev
	}
}

// Failed records msg as the error and leaves the data fields untouched.
func Failed(msg string) Transform {
	return func(prev State) State {
		prev.Status = StatusError
		prev.Error = msg
		return prev
	}
}
