package modules

// Options configures the discovery module set for one run.
type Options struct {
	UserAgent string
	// AXFR enables the zone-transfer module; it actively touches the
	// target's nameservers, so it stays opt-in.
	AXFR bool
	// BruteConcurrency caps the brute-force module's DNS fan-out.
	BruteConcurrency int
}

// SubdomainModules returns one instance of every registered discovery
// module. Order carries no meaning; the pipeline composes their outputs
// into one deduplicated set.
func SubdomainModules(opts Options) []SubdomainModule {
	mods := []SubdomainModule{
		NewCrtSh(opts.UserAgent),
		NewWebArchive(opts.UserAgent),
		NewHackerTarget(opts.UserAgent),
		NewOTX(opts.UserAgent),
		NewBrute(opts.BruteConcurrency),
	}
	if opts.AXFR {
		mods = append(mods, NewAXFR())
	}
	return mods
}

// HTTPModules returns one instance of every registered HTTP check module.
func HTTPModules() []HTTPModule {
	return []HTTPModule{
		NewDirectoryListing(),
		NewDotEnvDisclosure(),
		NewGitConfigLeakage(),
		NewGitHeadLeakage(),
	}
}
