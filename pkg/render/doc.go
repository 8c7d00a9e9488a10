// Package render groups the visualization backends.
//
// The [treemap] subpackage is the only backend: it draws nested treemaps on
// raster surfaces, with legend composition and adaptive labels. Keeping it
// one level down leaves room for alternative projections of the same
// category trees without renaming import paths.
//
// [treemap]: github.com/aliquod/treemapper/pkg/render/treemap
package render
