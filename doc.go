// Package femglue holds the configuration and numeric helpers shared by the
// femglue geometry packages.
//
// Every geometry value rounds its coordinates to Current().Precision decimal
// places and compares them with Current().Tol(). The configuration is read
// once from femglue.json and femglue.env in the working directory and the
// FEMGLUE_PRECISION environment variable:
//
//	{"precision": 5}
//
// Programs that need a different setting publish it with SetCurrent:
//
//	cfg := femglue.DefaultConfig()
//	cfg.Precision = 9
//	if err := femglue.SetCurrent(cfg); err != nil {
//	    return err
//	}
//
// Geometry values built before a change keep the coordinates they were
// rounded to.
package femglue
