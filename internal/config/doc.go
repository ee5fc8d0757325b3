// Package config defines the format-agnostic source-tree layout model for
// the bundler, along with the Loader interface for reading it from a
// configuration file. The `config.Layout` is the single source of truth for
// the naming, depgraph, transform and assemble packages. Concrete
// implementations of Loader, such as for HCL, live in separate packages.
package config
