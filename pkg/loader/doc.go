// Package loader reads city records and region files and turns them into a
// graph ready for the forest builder.
//
// City files are comma separated with the columns
//
//	zip,lat,lon,city,state,county
//
// An optional header row whose first field is "zip" is skipped. Empty or
// non-numeric coordinates default to 0.0; such records are kept unless
// [Dedupe] is asked to drop them. Files ending in ".gz" or ".zst" are
// decompressed transparently by [Open].
//
// [LoadDataset] reads the city, region and adjacency files concurrently.
package loader
