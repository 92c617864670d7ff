package twindle

import (
	"github.com/lisanmuaddib/twindle/pkg/kindle"
	"github.com/lisanmuaddib/twindle/pkg/status"
)

// ValidateEnvironment runs the preconditions that must hold before any
// network activity. Checks run in order and the first failure wins:
// bearer token, then (only when delivery is requested) mail relay
// credentials, Kindle address presence and Kindle address shape.
// The reporter is failed before the error is returned.
func ValidateEnvironment(env EnvConfig, cfg RunConfig, reporter status.Reporter) error {
	fail := func(err *UserError) error {
		reporter.Fail(string(err.Kind))
		return err
	}

	if env.BearerToken == "" {
		return fail(NewUserError(KindMissingCredential,
			"Please ensure that you have a .env file containing a value for TWITTER_AUTH_TOKEN"))
	}

	if !cfg.Deliver {
		return nil
	}

	if !env.HasMailServer() {
		return fail(NewUserError(KindMissingMailServerConfig,
			"Please setup the credentials for the mail server to send the email to Kindle"))
	}

	address := ResolveKindleEmail(env, cfg)
	if address == "" {
		return fail(NewUserError(KindMissingKindleAddress,
			"Pass your kindle email address with -s or configure it in the .env file"))
	}

	if !kindle.ValidAddress(address) {
		message := "Kindle Email configured in .env file is invalid"
		if cfg.KindleEmail != "" {
			message = "Enter a valid email address"
		}
		return fail(NewUserError(KindInvalidKindleAddress, message))
	}

	return nil
}

// ResolveKindleEmail prefers the inline address over the configured default
func ResolveKindleEmail(env EnvConfig, cfg RunConfig) string {
	if cfg.KindleEmail != "" {
		return cfg.KindleEmail
	}
	return env.KindleEmail
}
