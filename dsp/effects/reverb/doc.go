// Package reverb provides the fixed reverb topologies built on package fdn.
//
// Included models:
//   - Shimmer: Griesinger-style loop of two modulated long all-passes.
//   - Plate: Dattorro-style figure-eight tank with seven output taps per channel.
//   - AllPassDemo: a single all-pass whose length and coefficient follow the
//     size and diffusion controls. Useful for hearing the primitive on its own.
//
// Every model carves its regions out of a caller-supplied [delay.Workspace].
// Several models may share one workspace as long as only one of them is
// processed between two calls to Clear.
//
// Process adds (wet - dry) * amount onto the output buffer, so an output
// seeded with the dry input becomes a dry/wet crossfade and an output left
// untouched by amount 0.
package reverb
