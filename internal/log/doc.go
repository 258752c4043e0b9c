// Package log provides secure logging built on top of the standard slog
// package.
//
// The SecureHandler masks sensitive information before it reaches the
// output:
//   - attributes whose key names a credential (authorization, token, cookie)
//   - GitHub tokens (ghp_, gho_, ghs_, github_pat_ ...) found in any string
//     attribute, error or message
//   - bearer, basic and JWT authorization values
//
// Even in verbose mode, the GITHUB_TOKEN used for README requests never
// appears in logs.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("fetching readme", "url", url, "authorization", header)
//	// authorization=***REDACTED***
package log
