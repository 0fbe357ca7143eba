// Package kmeans implements the color clustering engine used to reduce an
// image's palette to k representative colors.
//
// Clustering runs in three stages:
//
//  1. Seeding: SeedCenters picks k initial centers with k-means++, weighting
//     each candidate by its L1 distance to the nearest center chosen so far.
//  2. Refinement: Cluster repeatedly assigns every sample to its nearest
//     center and replaces each center with the rounded mean of its members,
//     until the centers stop changing or the iteration cap is reached.
//  3. Classification: Classify maps any color to the index of its nearest
//     final center.
//
// # Tie-breaking
//
// Whenever two centers are equally close to a color, the one that appears
// first in the center slice wins. The same rule applies during assignment and
// classification, so a pixel always maps to the cluster its samples joined.
//
// # Empty Clusters
//
// A center that attracts no samples during an iteration is dropped rather than
// kept at its previous position. The returned center set may therefore hold
// fewer than k colors.
//
// # Determinism
//
// Given the same samples and a fixed Config.Seed, Cluster always returns the
// same centers. The package holds no global state and all operations are
// sequential.
package kmeans
