// Package samplesheet reads library sample sheets (CSV or TSV) into
// domain libraries.
//
// Headers are matched case-insensitively and through an alias table, so
// "conc", "Concentration" and "Final ng/ul" all name the same column.
// Every row is validated before any library is returned; the core never
// sees a sheet with blocking errors.
package samplesheet
