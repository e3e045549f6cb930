// Package generate renders the output artifacts for a configured entity
// and packages them for download.
//
// The Driver is the entry point: it validates the configuration, checks
// the current schema and manifest for unresolved conflicts, and renders
// the five default artifacts (controller, view model, view, script,
// stylesheet) through the Renderer. Domain problems never surface as bare
// errors; the GenerationResult carries the success flag, partial output
// and the unresolved conflict list so a front-end can show exactly what
// happened.
//
// The Packager bundles results into a ZIP, and the Uploader optionally
// pushes finished archives to object storage.
package generate
