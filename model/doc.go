// Package model loads geometry documents and turns them into validated
// geometry.
//
// A document names its points once and builds every other shape from point
// references:
//
//	points:
//	  a: [0, 0, 0]
//	  b: [1, 0, 0]
//	  c: [1, 1, 0]
//	  d: [0, 1, 0]
//	polygons:
//	  - name: floor
//	    points: [a, b, c, d]
//
// Documents can be JSON, YAML or TOML. Build reports every invalid entity at
// once through errors.Join.
package model
