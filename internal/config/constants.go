package config

import "time"

// Timeouts imposed by the host program. The connect operation itself has none.
const (
	DialTimeout   = 10 * time.Second // provider detection and dial
	StatusTimeout = 30 * time.Second // one-shot status command, end to end
)
