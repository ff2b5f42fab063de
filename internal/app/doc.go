// Package app provides the application service layer.
//
// Orchestrates use cases: session resolution and sign-in, job browsing and
// management, applying, withdrawing, and provider triage. It is the only
// component that references session, lifecycle, reconciler and the backend
// gateways together; views talk to the Service, never to the parts directly.
package app
