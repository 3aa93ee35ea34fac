// Package lint implements the non_camel_case_types pass: it projects parsed
// files into declaration sites, checks every name with package casing,
// resolves the lint level and turns non-conforming names into diagnostics.
//
// All run state (the once-per-scope note cache and the severity counters)
// lives in an AnalysisContext owned by the driver. The pass is sequential;
// only parsing runs in parallel.
package lint
