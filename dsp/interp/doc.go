// Package interp provides the fractional-read kernels used by modulated
// delay regions.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation (reference behavior)
//   - [Hermite4]: 4-point cubic Hermite
//
// The [Mode] enum selects a kernel when an engine is constructed; its
// [Mode.Reach] tells how much extra region headroom the kernel needs.
package interp
