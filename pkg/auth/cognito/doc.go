// Package cognito verifies credentials against an Amazon Cognito user pool.
//
// Two flows are supported, selected by the auth-flow option:
//
//   - admin: AdminInitiateAuth with ADMIN_USER_PASSWORD_AUTH. Needs IAM
//     credentials allowed to call cognito-idp:AdminInitiateAuth on the pool
//     (static keys from the configuration, or the EC2 instance role).
//   - user-password: the public InitiateAuth with USER_PASSWORD_AUTH. Needs
//     no IAM credentials, but the app client must enable the flow.
//
// Code challenges (SMS_MFA, SOFTWARE_TOKEN_MFA, EMAIL_OTP) are answered
// through the matching RespondToAuthChallenge call.
//
// Provider answers map to auth outcomes; everything else (network errors,
// throttling, internal errors, deadlines) is returned as an error wrapping
// ErrServiceUnavailable.
package cognito
