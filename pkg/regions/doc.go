// Package regions indexes which regions border each other and which vertices
// sit in each region.
//
// An [Index] is built once from two static inputs: the list of valid region
// codes and a list of adjacency declarations. Declarations are symmetric: a
// pair (A, B) makes A adjacent to B and B adjacent to A.
//
//	idx := regions.New([]string{"TX", "OK", "NM"}, []regions.Pair{{A: "TX", B: "OK"}, {A: "TX", B: "NM"}})
//	idx.Adjacent("OK") // [TX]
//
// Vertex membership is a separate preparation step. After every vertex has
// been loaded into a graph, [Index.IndexVertices] groups vertex ids by region
// in ascending id order. The forest builder scans regions in that order, so
// the index must be prepared before a build starts and must not change during
// one.
//
// # File Formats
//
// [ParseRegions] reads whitespace-separated region codes. [ParseAdjacency]
// reads one line per region, the region first and its neighbors after it:
//
//	# region,neighbor,neighbor,...
//	TX,OK,NM,LA,AR
//	OK,KS,CO
package regions
