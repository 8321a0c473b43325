// Package lrs implements the session and role based access control layer of
// the Lecture Reminder System web client.
//
// The package establishes who is logged in from an opaque bearer credential,
// propagates that identity to every view, and gates protected views so that
// unauthenticated or unauthorized visitors are redirected instead of shown
// protected content.
//
// The main pieces are:
//
//   - CredentialStore: single durable slot holding the raw bearer credential.
//   - DecodeIdentity: pure decoder that projects the credential's claims into
//     an Identity without contacting the network.
//   - Store: the session store holding identity, credential, and loading state
//     with observer semantics.
//   - Evaluate / Guard: the route guard state machine deciding render vs redirect.
//   - RouteGuard: HTTP middleware binding the guard to go-router handlers.
//
// The client never validates credential signatures; that is the remote API's
// responsibility. Decoding is structural only.
package lrs
