// Package transitour computes the fastest tour visiting every station
// of a transit network.
//
// The pipeline reduces the network to an all-pairs shortest-time model,
// constructs an initial visiting order by cheapest insertion, refines
// it with 2-opt and relocation local search, and expands the result
// back into a stop-by-stop itinerary over real ride and transfer edges.
//
// Packages:
//
//	network   - validated directed graph of stations and timed edges
//	allpairs  - all-pairs shortest-time matrix with reconstructed paths
//	tour      - tour construction and local-search improvement
//	itinerary - expansion of a tour into a concrete stop sequence
//	planner   - the pipeline wiring the stages together
//	gtfs      - GTFS feed ingestion and network derivation
//	export    - GeoJSON and Google Earth Studio renderings
//
// The cmd/transitour command ties the pipeline to the command line.
package transitour
