// Package core holds the small numeric helpers and processing options shared
// by the delay, fdn and reverb packages.
package core
