// Package domain models winter injury risk for Edmonton neighborhoods.
//
// # Data Source
//
// Neighborhood polygons and socioeconomic context come from the Open Data
// Edmonton neighborhood dataset, preprocessed upstream into a GeoJSON-style
// FeatureCollection. Each feature carries the neighborhood name, an
// ses_index and infrastructure_quality score in [0, 1], the list of adjacent
// neighborhoods (derived from polygon adjacency during preprocessing), and
// optional aliases for common informal names ("Jasper Place" → West Edmonton).
// The dataset is loaded once at process start and never mutated; a reload
// must swap the whole *Graph reference.
//
// # Calibration Guardrails
//
// The upstream classifier is trained almost exclusively on winter observations,
// so its raw probabilities need deterministic correction before they are shown
// to users. Three guardrails apply in fixed order to a working probability:
//
//	Seasonality:  outside December–March the probability is scaled down
//	              (default ×0.6). Winter injury risk is not asserted at face
//	              value in July even when upstream features look adversarial.
//	Overnight:    between 22:00 and 05:59 a fixed additive bump (default +0.05)
//	              reflects elevated per-incident severity in low-visibility,
//	              low-traffic hours.
//	Warm and dry: above the thaw threshold (default 0 °C) with low
//	              precipitation (default < 1.0 mm) the probability is scaled
//	              down (default ×0.7); near-freezing dry pavement structurally
//	              reduces ice-fall risk.
//
// The result is clamped to [0, 1]. The signed difference between calibrated
// and raw probability is reported as the calibration delta so the transport
// layer can surface how much correction was applied.
//
// # Risk Bands
//
// Calibrated probabilities map onto four closed-open bands:
//
//	low      [0.00, 0.25)
//	medium   [0.25, 0.50)
//	high     [0.50, 0.75)
//	critical [0.75, 1.00]
//
// A probability exactly on a boundary classifies into the higher band.
//
// # Corridors
//
// A corridor is the shortest hop-count path between two neighborhoods over the
// adjacency graph, found by breadth-first search with a lexicographic
// tie-break so identical inputs always produce identical routes. Each hop is
// scored independently; the corridor aggregate is the probability of at least
// one adverse event across all hops, 1 − Π(1 − p_i). This is the only
// combination rule that is monotone in every hop, collapses to the hop's own
// probability for single-hop corridors, and stays in [0, 1] without clamping.
package domain
