package chameleon

import "sync"

var (
	defaultOnce sync.Once
	defaultReg  *Chameleon
)

// Default returns a process-wide registry built on first use with default options.
// Prefer passing an explicit registry around; Default exists for call sites that
// have none at hand.
func Default() *Chameleon {
	defaultOnce.Do(func() {
		defaultReg = New()
	})

	return defaultReg
}
