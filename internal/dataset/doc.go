// Package dataset defines the records shown by the quay dashboard and loads
// them from disk.
//
// Data files are JWCC (JSON with comments and trailing commas), standardized
// with hujson before decoding:
//
//	{
//	  // containers currently on site
//	  "containers": [{"number": "MSCU4471203", "weight_kg": 21450.5}],
//	  "bills": [],
//	  "users": [],
//	}
//
// Optional values are pointers so that a missing or null field stays nil and
// sorts after every present value.
//
// A Source without a path serves the embedded sample so quay starts without
// any configuration.
package dataset
