// Package syncer reconciles the local entry store with the remote one.
//
// A run has three phases executed strictly in order:
//
//  1. upload: every local entry that is missing remotely, or whose mtime is
//     strictly newer than the remote lastModified, is pushed (image first,
//     then the document);
//  2. download: every remote document that is missing locally, or whose
//     lastModified is strictly newer than the local mtime, is pulled and the
//     local mtime is forced to the remote value;
//  3. verify: every id seen in phases 1 and 2 is counted as succeeded when
//     both sides exist and their timestamps agree within the tolerance.
//
// Entries are handled one at a time in enumeration order. Errors for a single
// entry are recorded in the Report and never stop the run; only a failed
// connectivity probe aborts it.
package syncer
