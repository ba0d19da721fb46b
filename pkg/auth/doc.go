// Package auth bridges one PAM authentication attempt to an identity
// provider.
//
// This package defines the provider-neutral pieces of an attempt:
//
//   - Verifier: the external verification call (Cognito in production)
//   - Outcome: the tagged result of a verification
//   - Status: the small enumeration returned to the host
//   - Bridge: parse configuration, acquire credentials, verify, map, wipe
//
// The Bridge holds no mutable state. Everything an attempt needs arrives
// as parameters and nothing survives the call, so the same Bridge is
// correct whether the host forks a process per login or reuses one.
//
// Sub-packages:
//   - credential/: the wipeable credential pair
//   - cognito/: the Amazon Cognito Verifier
package auth
