// Package lifecycle holds shared constants for application startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown of long-lived
// components (HTTP server, database connections).
const DefaultTimeout = 10 * time.Second
