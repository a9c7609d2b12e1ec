// Package driving defines the interfaces external actors use to drive
// the application core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and the upload watcher call these interfaces; core services
// implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
