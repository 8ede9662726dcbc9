// Package naming derives output file names for conversion jobs and resolves
// in-run collisions.
//
// Output files are flat: every input lands directly in the output directory
// under its own base name with the target extension. Two inputs from
// different subdirectories can therefore ask for the same output path; the
// [CollisionResolver] hands the second one a " - dupN" variant so parallel
// workers never write the same file.
package naming
