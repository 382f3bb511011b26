// Package tour builds and refines the visiting sequence over all
// stations of a resolved network.
//
// The tour lives entirely on the virtual complete graph produced by
// package allpairs: every hop cost is a DistanceMatrix lookup, never a
// raw network edge. A Tour is an ordering of all canonical station
// indices, each appearing exactly once; it is closed (wraps back to its
// start) or open depending on configuration.
//
// Two stages operate on tours:
//
//   - Construct: cheapest-insertion heuristic. Starting from a
//     deterministic seed station, it repeatedly picks the unvisited
//     station nearest to the partial tour and splices it into the
//     position with the smallest cost increase. Chosen over plain
//     nearest-neighbor because insertion tours land within a smaller
//     constant factor of optimal at essentially the same cost.
//   - Improve: first-improvement local search over two move kinds —
//     2-opt segment reversal (with the reversed interior re-costed
//     exactly, since the matrix is asymmetric in general) and
//     single-station relocation. Candidates are scanned in a fixed
//     order; the first strictly-improving move is applied and the scan
//     restarts. A full scan with no applied move terminates in
//     StateConverged; exhausting the pass or wall-clock budget
//     terminates in StateBudgeted. Both are normal outcomes yielding a
//     valid tour, and cost never increases across a pass.
//
// All arithmetic is exact int64 seconds, so convergence detection never
// suffers floating-point drift. Every comparison with potential ties
// resolves them by lowest station index, then lowest position, making
// the whole stage reproducible for identical input.
package tour
