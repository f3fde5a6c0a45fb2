// Package delay provides the sample memory behind the FDN engine: one
// [Workspace] carved by [Partition] into fixed regions, a shared [Clock], and
// [Line], a ring view over one region.
//
// Regions are plain descriptors recomputed from an ordered extent list. The
// workspace contents, not the views, are the persistent state, so views can
// be rebuilt every block without disturbing the stored history.
package delay
