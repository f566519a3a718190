// Package instance identifies which cron-worker replica is running, so lock
// contention and job logs can be traced to a concrete pod.
package instance

import "os"

// GetID returns the WORKER_ID assigned by the deployment, or a stable local
// default when running outside one.
func GetID() string {
	if id := os.Getenv("WORKER_ID"); id != "" {
		return id
	}
	return "worker-0"
}
